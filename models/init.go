package models

import (
	"strings"
	"travelworld/db"
)

// Init creates or updates the schema
func Init() error {
	err := db.Instance.AutoMigrate(
		&User{},
		&Region{},
		&Place{},
		&PlaceCategory{},
		&Completed{},
	)
	if err != nil {
		return err
	}
	return backfillNameLower()
}

// backfillNameLower fills the search columns of rows written before they existed
func backfillNameLower() error {
	var regions []Region
	if err := db.Instance.Where("name_lower = '' AND name <> ''").Find(&regions).Error; err != nil {
		return err
	}
	for _, r := range regions {
		if err := db.Instance.Model(&Region{}).Where("id = ?", r.ID).
			UpdateColumn("name_lower", strings.ToLower(r.Name)).Error; err != nil {
			return err
		}
	}
	var places []Place
	if err := db.Instance.Where("name_lower = '' AND name <> ''").Find(&places).Error; err != nil {
		return err
	}
	for _, p := range places {
		if err := db.Instance.Model(&Place{}).Where("id = ?", p.ID).
			UpdateColumn("name_lower", strings.ToLower(p.Name)).Error; err != nil {
			return err
		}
	}
	return nil
}

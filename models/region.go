package models

import (
	"errors"
	"strings"
	"time"
	"travelworld/db"

	"gorm.io/gorm"
)

// Region is a top level grouping of places, shown as a "state" in the UI
type Region struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   time.Time
	Name        string `gorm:"type:varchar(100);not null"`
	NameLower   string `gorm:"type:varchar(100);not null;default:''" json:"-"` // search column, see BeforeSave
	Description string `gorm:"type:text"`
	ImagePath   string `gorm:"type:varchar(255)"` // relative to the public static root
	// Denormalized, see recountPlaces
	PlacesCount int     `gorm:"not null;default:0"`
	Places      []Place `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// BeforeSave folds the name in Go, SQL LOWER() only handles ASCII on SQLite
func (r *Region) BeforeSave(tx *gorm.DB) error {
	r.NameLower = strings.ToLower(r.Name)
	return nil
}

func RegionCreate(name, description, imagePath string) (r Region, err error) {
	r = Region{
		Name:        strings.TrimSpace(name),
		Description: description,
		ImagePath:   imagePath,
	}
	return r, db.Instance.Create(&r).Error
}

func RegionByID(id uint64) (r Region, err error) {
	err = db.Instance.First(&r, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Region{}, ErrNotFound
	}
	return
}

// RegionList returns regions newest first, optionally filtered by a case-insensitive name substring
func RegionList(search string) (result []Region, err error) {
	tx := db.Instance.Model(&Region{})
	if search = strings.TrimSpace(search); search != "" {
		tx = whereContains(tx, "regions.name_lower", search)
	}
	result = []Region{}
	err = tx.Order("regions.created_at DESC, regions.id DESC").Find(&result).Error
	return
}

// RegionDelete removes the region, its places go with it through the foreign key.
// The deleted region is returned with its places so their images can be cleaned up.
func RegionDelete(id uint64) (r Region, err error) {
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Places").First(&r, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(&Region{}, id).Error
	})
	return
}

// recountPlaces recomputes places_count from the live rows. Must run in the
// same transaction as the insert/delete that changed them.
func recountPlaces(tx *gorm.DB, regionID uint64) error {
	return tx.Model(&Region{}).
		Where("id = ?", regionID).
		UpdateColumn("places_count", tx.Model(&Place{}).Select("count(*)").Where("region_id = ?", regionID)).
		Error
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// whereContains adds a case-insensitive substring match on an already lower-cased column
func whereContains(tx *gorm.DB, column, needle string) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(needle)) + "%"
	return tx.Where(column+" LIKE ? ESCAPE '!'", pattern)
}

package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
	"travelworld/db"

	"gorm.io/gorm"
)

type Place struct {
	ID           uint64 `gorm:"primaryKey"`
	CreatedAt    time.Time
	RegionID     uint64 `gorm:"index;not null"`
	Name         string `gorm:"type:varchar(150);not null"`
	NameLower    string `gorm:"type:varchar(150);not null;default:''" json:"-"`
	District     string `gorm:"type:varchar(100)"`
	Description  string `gorm:"type:text"`
	ImagePath    string `gorm:"type:varchar(255)"` // relative to the public static root
	LocationLink string `gorm:"type:text"`
	// Best time to visit, columns best_from / best_to
	BestTime   MonthRange      `gorm:"embedded;embeddedPrefix:best_"`
	Categories []PlaceCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// MaxCategoryLength is the width of place_categories.name, in characters
const MaxCategoryLength = 50

// PlaceCategory tags a place, a place can have any number of distinct tags
type PlaceCategory struct {
	PlaceID uint64 `gorm:"primaryKey;autoIncrement:false"`
	Name    string `gorm:"primaryKey;type:varchar(50);index"`
}

// NormalizeCategories trims and lower-cases tags, dropping empty ones and duplicates.
// The result is sorted.
func NormalizeCategories(names []string) []string {
	seen := map[string]bool{}
	result := []string{}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// ValidateCategories fails with ErrCategoryTooLong if a normalized tag does not fit its column
func ValidateCategories(names []string) error {
	for _, name := range NormalizeCategories(names) {
		if utf8.RuneCountInString(name) > MaxCategoryLength {
			return fmt.Errorf("%w: %q", ErrCategoryTooLong, name)
		}
	}
	return nil
}

// SetCategories replaces the tags of a place that is not saved yet
func (p *Place) SetCategories(names []string) {
	p.Categories = []PlaceCategory{}
	for _, name := range NormalizeCategories(names) {
		p.Categories = append(p.Categories, PlaceCategory{Name: name})
	}
}

func (p *Place) CategoryNames() []string {
	result := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		result = append(result, c.Name)
	}
	sort.Strings(result)
	return result
}

func (p *Place) HasCategory(name string) bool {
	for _, c := range p.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (p *Place) BeforeSave(tx *gorm.DB) error {
	p.NameLower = strings.ToLower(p.Name)
	return nil
}

// PlaceCreate inserts the place with its tags and updates the region's places_count,
// all in one transaction. Returns ErrNotFound if the region does not exist.
func PlaceCreate(p *Place) error {
	if err := ValidateCategories(p.CategoryNames()); err != nil {
		return err
	}
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Region{}).Where("id = ?", p.RegionID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return recountPlaces(tx, p.RegionID)
	})
}

// PlaceDelete deletes a place only if it belongs to the given region and updates the
// region's places_count in the same transaction. The deleted place is returned.
func PlaceDelete(placeID, regionID uint64) (p Place, err error) {
	err = db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND region_id = ?", placeID, regionID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&Place{}, p.ID).Error; err != nil {
			return err
		}
		return recountPlaces(tx, regionID)
	})
	return
}

func PlaceByID(id uint64) (p Place, err error) {
	err = db.Instance.Preload("Categories").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Place{}, ErrNotFound
	}
	return
}

package models

import (
	"strings"
	"time"
	"travelworld/db"

	"gorm.io/gorm"
)

// PlaceFilter selects places of a region. Every non-empty field narrows the result,
// so a place is listed only if it satisfies all of them.
type PlaceFilter struct {
	RegionID uint64
	// Case-insensitive substring of the place name
	Search string
	// Any-of: a place matches if it has at least one of these tags
	Categories []string
	// Full month name, unrecognized names are ignored
	Month string
}

// MonthValue returns the parsed month and whether the month condition applies
func (f *PlaceFilter) MonthValue() (time.Month, bool) {
	if strings.TrimSpace(f.Month) == "" {
		return 0, false
	}
	m, err := ParseMonth(f.Month)
	return m, err == nil
}

// Apply adds the filter conditions to a query on places
func (f *PlaceFilter) Apply(tx *gorm.DB) *gorm.DB {
	tx = tx.Where("places.region_id = ?", f.RegionID)
	if search := strings.TrimSpace(f.Search); search != "" {
		tx = whereContains(tx, "places.name_lower", search)
	}
	if categories := NormalizeCategories(f.Categories); len(categories) > 0 {
		tx = tx.Where("places.id IN (?)",
			db.Instance.Model(&PlaceCategory{}).Select("place_id").Where("name IN ?", categories))
	}
	if m, ok := f.MonthValue(); ok {
		month := int(m)
		// From > To wraps over the end of the year, see MonthRange.Contains
		tx = tx.Where(
			"((places.best_from <= places.best_to AND places.best_from <= ? AND ? <= places.best_to) OR "+
				"(places.best_from > places.best_to AND (? >= places.best_from OR ? <= places.best_to)))",
			month, month, month, month,
		)
	}
	return tx
}

// Matches is the in-memory equivalent of Apply, Categories must be loaded
func (f *PlaceFilter) Matches(p *Place) bool {
	if p.RegionID != f.RegionID {
		return false
	}
	if search := strings.TrimSpace(f.Search); search != "" &&
		!strings.Contains(strings.ToLower(p.Name), strings.ToLower(search)) {
		return false
	}
	if categories := NormalizeCategories(f.Categories); len(categories) > 0 {
		found := false
		for _, c := range categories {
			if p.HasCategory(c) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if m, ok := f.MonthValue(); ok && !p.BestTime.Contains(m) {
		return false
	}
	return true
}

// PlaceList returns the places matching the filter, newest first, with their tags
func PlaceList(f PlaceFilter) (result []Place, err error) {
	result = []Place{}
	err = f.Apply(db.Instance.Model(&Place{})).
		Preload("Categories").
		Order("places.created_at DESC, places.id DESC").
		Find(&result).Error
	return
}

// CategoryList returns every tag in use within a region, for the filter form
func CategoryList(regionID uint64) (result []string, err error) {
	result = []string{}
	err = db.Instance.Model(&PlaceCategory{}).
		Joins("JOIN places ON places.id = place_categories.place_id").
		Where("places.region_id = ?", regionID).
		Order("place_categories.name").
		Distinct().
		Pluck("place_categories.name", &result).Error
	return
}

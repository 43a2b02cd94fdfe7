package models

import (
	"testing"
	"time"
	"travelworld/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func regionNames(regions []Region) []string {
	result := []string{}
	for _, r := range regions {
		result = append(result, r.Name)
	}
	return result
}

func TestRegionList(t *testing.T) {
	setupDB(t)
	mustRegion(t, "Île-de-France")
	mustRegion(t, "Rajasthan")
	mustRegion(t, "Kerala")
	mustRegion(t, "Tamil_Nadu")

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{"all newest first", "", []string{"Tamil_Nadu", "Kerala", "Rajasthan", "Île-de-France"}},
		{"whitespace only", "   ", []string{"Tamil_Nadu", "Kerala", "Rajasthan", "Île-de-France"}},
		{"substring", "ra", []string{"Kerala", "Rajasthan", "Île-de-France"}},
		{"case insensitive", "KERALA", []string{"Kerala"}},
		{"non-ASCII lower case", "île", []string{"Île-de-France"}},
		{"non-ASCII upper case", "ÎLE-DE", []string{"Île-de-France"}},
		{"underscore is literal", "_", []string{"Tamil_Nadu"}},
		{"percent is literal", "%", []string{}},
		{"no match", "Goa", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RegionList(tt.search)
			require.NoError(t, err)
			assert.Equal(t, tt.want, regionNames(got))
		})
	}
}

func TestRegionByID(t *testing.T) {
	setupDB(t)
	r := mustRegion(t, "Punjab")

	got, err := RegionByID(r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Punjab", got.Name)
	assert.Equal(t, 0, got.PlacesCount)

	_, err = RegionByID(r.ID + 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegionDelete_Cascades(t *testing.T) {
	setupDB(t)
	region := mustRegion(t, "Ladakh")
	keep := mustRegion(t, "Himachal")
	mustPlace(t, region.ID, "Pangong", time.May, time.September, "lake")
	mustPlace(t, region.ID, "Nubra", time.June, time.August, "desert")
	mustPlace(t, keep.ID, "Manali", time.March, time.June, "snow")

	deleted, err := RegionDelete(region.ID)
	require.NoError(t, err)
	assert.Len(t, deleted.Places, 2)

	var places, categories int64
	require.NoError(t, db.Instance.Model(&Place{}).Where("region_id = ?", region.ID).Count(&places).Error)
	require.NoError(t, db.Instance.Model(&PlaceCategory{}).Count(&categories).Error)
	assert.Zero(t, places)
	assert.Equal(t, int64(1), categories, "only the category of the kept region's place remains")
	assert.Equal(t, 1, placesCount(t, keep.ID))

	_, err = RegionDelete(region.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBackfillNameLower(t *testing.T) {
	setupDB(t)
	region := mustRegion(t, "Émilie")
	place := mustPlace(t, region.ID, "Ærø Island", time.May, time.May)
	assert.Equal(t, "émilie", region.NameLower)
	assert.Equal(t, "ærø island", place.NameLower)

	// Rows written before the search columns existed
	require.NoError(t, db.Instance.Model(&Region{}).Where("id = ?", region.ID).UpdateColumn("name_lower", "").Error)
	require.NoError(t, db.Instance.Model(&Place{}).Where("id = ?", place.ID).UpdateColumn("name_lower", "").Error)
	found, err := RegionList("émilie")
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, backfillNameLower())
	found, err = RegionList("ÉMILIE")
	require.NoError(t, err)
	assert.Equal(t, []string{"Émilie"}, regionNames(found))
	places, err := PlaceList(PlaceFilter{RegionID: region.ID, Search: "ærø"})
	require.NoError(t, err)
	assert.Len(t, places, 1)
}

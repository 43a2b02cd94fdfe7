package models

import (
	"strings"
	"testing"
	"time"
	"travelworld/db"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
)

// setupDB points db.Instance to a fresh in-memory database for the current test
func setupDB(t *testing.T) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := "file:" + name + "?mode=memory&cache=shared&_foreign_keys=1"
	require.NoError(t, db.Open(sqlite.Open(dsn), zap.NewNop()))
	sqlDB, err := db.Instance.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, Init())
}

func mustRegion(t *testing.T, name string) Region {
	t.Helper()
	r, err := RegionCreate(name, name+" description", "uploads/states/"+name+".jpg")
	require.NoError(t, err)
	return r
}

func mustPlace(t *testing.T, regionID uint64, name string, from, to time.Month, categories ...string) Place {
	t.Helper()
	p := Place{
		RegionID: regionID,
		Name:     name,
		District: "District",
		BestTime: MonthRange{from, to},
	}
	p.SetCategories(categories)
	require.NoError(t, PlaceCreate(&p))
	return p
}

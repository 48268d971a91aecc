package centers

import (
	"context"
	"testing"

	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCentersTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Center{}, &models.CenterDay{}, &models.CenterCollect{},
		&models.Schedule{}, &models.Material{}, &models.Type{},
	))
	return conn
}

func seedCenter(t *testing.T, conn *gorm.DB, name string) *models.Center {
	t.Helper()
	center := &models.Center{Name: name, Address: "12 Green St"}
	require.NoError(t, conn.Create(center).Error)
	return center
}

func seedType(t *testing.T, conn *gorm.DB, name string, points int) *models.Type {
	t.Helper()
	material := &models.Material{Name: name + " material", Category: "PAPER"}
	require.NoError(t, conn.Create(material).Error)
	typ := &models.Type{Name: name, Points: points, MaterialID: material.ID}
	require.NoError(t, conn.Create(typ).Error)
	return typ
}

func TestCreatePersistsWorkingDays(t *testing.T) {
	conn := setupCentersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	center := &models.Center{
		Name:    "Downtown",
		Address: "1 Main St",
		WorkingDays: []models.CenterDay{
			{Day: "MONDAY", StartTime: "08:00", EndTime: "17:00"},
			{Day: "TUESDAY", StartTime: "08:00", EndTime: "17:00"},
		},
	}
	require.NoError(t, repo.Create(ctx, center))

	got, err := repo.FindByID(ctx, center.ID)
	require.NoError(t, err)
	assert.Len(t, got.WorkingDays, 2)
	assert.Equal(t, "MONDAY", got.WorkingDays[0].Day)
}

func TestListPreloadsDaysAndCounts(t *testing.T) {
	conn := setupCentersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		center := seedCenter(t, conn, name)
		require.NoError(t, conn.Create(&models.CenterDay{
			CenterID: center.ID, Day: "FRIDAY", StartTime: "09:00", EndTime: "12:00",
		}).Error)
	}

	centers, total, err := repo.List(ctx, pagination.Normalize(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, centers, 2)
	assert.Len(t, centers[0].WorkingDays, 1)
}

func TestReplaceWorkingDaysSwapsFullSet(t *testing.T) {
	conn := setupCentersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	center := seedCenter(t, conn, "Swap")
	require.NoError(t, repo.ReplaceWorkingDays(ctx, center.ID, []models.CenterDay{
		{Day: "MONDAY", StartTime: "08:00", EndTime: "17:00"},
	}))
	require.NoError(t, repo.ReplaceWorkingDays(ctx, center.ID, []models.CenterDay{
		{Day: "SATURDAY", StartTime: "10:00", EndTime: "14:00"},
	}))

	got, err := repo.FindByID(ctx, center.ID)
	require.NoError(t, err)
	require.Len(t, got.WorkingDays, 1)
	assert.Equal(t, "SATURDAY", got.WorkingDays[0].Day)
}

func TestAddCollectsIgnoresDuplicates(t *testing.T) {
	conn := setupCentersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	center := seedCenter(t, conn, "Dup")
	seedType(t, conn, "cardboard", 5)

	require.NoError(t, repo.AddCollects(ctx, center.ID, []string{"cardboard"}))
	require.NoError(t, repo.AddCollects(ctx, center.ID, []string{"cardboard"}))

	var count int64
	require.NoError(t, conn.Model(&models.CenterCollect{}).Where("center_id = ?", center.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestExistingTypeNames(t *testing.T) {
	conn := setupCentersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	seedType(t, conn, "glass bottle", 8)

	found, err := repo.ExistingTypeNames(ctx, []string{"glass bottle", "unobtainium"})
	require.NoError(t, err)
	assert.Equal(t, []string{"glass bottle"}, found)
}

func TestUpdateMissingCenter(t *testing.T) {
	conn := setupCentersTestDB(t)
	repo := NewRepository(conn)

	err := repo.Update(context.Background(), 42, map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteCascadesManually(t *testing.T) {
	conn := setupCentersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	center := seedCenter(t, conn, "Gone")
	require.NoError(t, repo.Delete(ctx, center.ID))

	_, err := repo.FindByID(ctx, center.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, center.ID), gorm.ErrRecordNotFound)
}

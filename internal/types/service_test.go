package types

import (
	"context"
	"testing"

	"github.com/minhle2212044/greencycle-backend/pkg/db"
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTypesService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&models.Material{}, &models.Type{}))

	svc, err := NewService(ServiceParams{DB: db.NewFromConn(conn)})
	require.NoError(t, err)
	return svc, conn
}

func seedMaterial(t *testing.T, conn *gorm.DB, name string) *models.Material {
	t.Helper()
	material := &models.Material{Name: name, Category: "PLASTIC"}
	require.NoError(t, conn.Create(material).Error)
	return material
}

func TestAddToMaterialChecksParent(t *testing.T) {
	svc, conn := setupTypesService(t)
	ctx := context.Background()

	material := seedMaterial(t, conn, "Plastic")

	dto, err := svc.AddToMaterial(ctx, material.ID, CreateTypeInput{Name: "pet bottle", Points: 6}, nil)
	require.NoError(t, err)
	assert.Equal(t, material.ID, dto.MaterialID)
	assert.Equal(t, 6, dto.Points)

	_, err = svc.AddToMaterial(ctx, 999, CreateTypeInput{Name: "orphan", Points: 1}, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestAddToMaterialDuplicateName(t *testing.T) {
	svc, conn := setupTypesService(t)
	ctx := context.Background()

	material := seedMaterial(t, conn, "Plastic")
	_, err := svc.AddToMaterial(ctx, material.ID, CreateTypeInput{Name: "pet bottle", Points: 6}, nil)
	require.NoError(t, err)

	_, err = svc.AddToMaterial(ctx, material.ID, CreateTypeInput{Name: "pet bottle", Points: 9}, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestUpdateByNameRenames(t *testing.T) {
	svc, conn := setupTypesService(t)
	ctx := context.Background()

	material := seedMaterial(t, conn, "Plastic")
	_, err := svc.AddToMaterial(ctx, material.ID, CreateTypeInput{Name: "pet bottle", Points: 6}, nil)
	require.NoError(t, err)

	newName := "PET bottle"
	points := 8
	dto, err := svc.UpdateByName(ctx, "pet bottle", UpdateTypeInput{Name: &newName, Points: &points}, nil)
	require.NoError(t, err)
	assert.Equal(t, "PET bottle", dto.Name)
	assert.Equal(t, 8, dto.Points)

	_, err = svc.GetByName(ctx, "pet bottle")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestUpdateByNameMissing(t *testing.T) {
	svc, _ := setupTypesService(t)

	points := 3
	_, err := svc.UpdateByName(context.Background(), "ghost", UpdateTypeInput{Points: &points}, nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestDeleteByName(t *testing.T) {
	svc, conn := setupTypesService(t)
	ctx := context.Background()

	material := seedMaterial(t, conn, "Plastic")
	_, err := svc.AddToMaterial(ctx, material.ID, CreateTypeInput{Name: "wrap", Points: 2}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByName(ctx, "wrap"))
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(svc.DeleteByName(ctx, "wrap")).Code())
}

func TestListByMaterialScopes(t *testing.T) {
	svc, conn := setupTypesService(t)
	ctx := context.Background()

	plastic := seedMaterial(t, conn, "Plastic")
	glass := seedMaterial(t, conn, "Glass")

	_, err := svc.AddToMaterial(ctx, plastic.ID, CreateTypeInput{Name: "pet bottle", Points: 6}, nil)
	require.NoError(t, err)
	_, err = svc.AddToMaterial(ctx, plastic.ID, CreateTypeInput{Name: "wrap", Points: 2}, nil)
	require.NoError(t, err)
	_, err = svc.AddToMaterial(ctx, glass.ID, CreateTypeInput{Name: "jar", Points: 7}, nil)
	require.NoError(t, err)

	page, err := svc.ListByMaterial(ctx, plastic.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	require.Len(t, page.Data, 2)

	all, err := svc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)

	_, err = svc.ListByMaterial(ctx, 404, 1, 10)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

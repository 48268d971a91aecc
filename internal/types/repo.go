package types

import (
	"context"

	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository wraps collectable-type persistence. Name is the natural key for
// updates and deletes.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a type under its material.
func (r *Repository) Create(ctx context.Context, typ *models.Type) error {
	return r.db.WithContext(ctx).Create(typ).Error
}

// FindByName loads a type by its unique name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Type, error) {
	var typ models.Type
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&typ).Error
	if err != nil {
		return nil, err
	}
	return &typ, nil
}

// MaterialExists reports whether a material row is present.
func (r *Repository) MaterialExists(ctx context.Context, materialID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Material{}).Where("id = ?", materialID).Count(&count).Error
	return count > 0, err
}

// UpdateByName applies a column patch keyed on name.
func (r *Repository) UpdateByName(ctx context.Context, name string, patch map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Type{}).Where("name = ?", name).Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByName removes a type keyed on name.
func (r *Repository) DeleteByName(ctx context.Context, name string) error {
	result := r.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Type{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns one page of types ordered by id.
func (r *Repository) List(ctx context.Context, p pagination.Params) ([]models.Type, int64, error) {
	return r.list(ctx, p, r.db.WithContext(ctx).Model(&models.Type{}))
}

// ListByMaterial returns one page of a material's types.
func (r *Repository) ListByMaterial(ctx context.Context, materialID int64, p pagination.Params) ([]models.Type, int64, error) {
	scoped := r.db.WithContext(ctx).Model(&models.Type{}).Where("material_id = ?", materialID)
	return r.list(ctx, p, scoped)
}

func (r *Repository) list(ctx context.Context, p pagination.Params, query *gorm.DB) ([]models.Type, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []models.Type
	err := query.
		Order("id ASC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&result).Error
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

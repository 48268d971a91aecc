package materials

import (
	"context"

	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository wraps material persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the material together with any nested types.
func (r *Repository) Create(ctx context.Context, material *models.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

// List returns one page of materials with their types preloaded.
func (r *Repository) List(ctx context.Context, p pagination.Params) ([]models.Material, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Material{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var materials []models.Material
	err := r.db.WithContext(ctx).
		Preload("Types").
		Order("id ASC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&materials).Error
	if err != nil {
		return nil, 0, err
	}
	return materials, total, nil
}

// FindByID loads a material with its types.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Material, error) {
	var material models.Material
	err := r.db.WithContext(ctx).Preload("Types").First(&material, id).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// Update applies a column patch.
func (r *Repository) Update(ctx context.Context, id int64, patch map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Material{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTypes removes the material's child types. Called in the same
// transaction as Delete so the cascade is explicit regardless of FK support.
func (r *Repository) DeleteTypes(ctx context.Context, materialID int64) error {
	return r.db.WithContext(ctx).Where("material_id = ?", materialID).Delete(&models.Type{}).Error
}

// Delete removes the material row.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Material{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

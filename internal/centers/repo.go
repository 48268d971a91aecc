package centers

import (
	"context"

	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository wraps center persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the center together with any preset working days.
func (r *Repository) Create(ctx context.Context, center *models.Center) error {
	return r.db.WithContext(ctx).Create(center).Error
}

// List returns one page of centers with working days preloaded, plus the
// total row count.
func (r *Repository) List(ctx context.Context, p pagination.Params) ([]models.Center, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Center{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var centers []models.Center
	err := r.db.WithContext(ctx).
		Preload("WorkingDays").
		Order("id ASC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&centers).Error
	if err != nil {
		return nil, 0, err
	}
	return centers, total, nil
}

// FindByID loads a center with its full relational graph.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Center, error) {
	var center models.Center
	err := r.db.WithContext(ctx).
		Preload("WorkingDays").
		Preload("Collects").
		Preload("Schedules").
		First(&center, id).Error
	if err != nil {
		return nil, err
	}
	return &center, nil
}

// Update applies a column patch. Missing rows surface as
// gorm.ErrRecordNotFound.
func (r *Repository) Update(ctx context.Context, id int64, patch map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Center{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceWorkingDays drops the center's day rows and recreates them from the
// provided set. Called inside a transaction alongside Update.
func (r *Repository) ReplaceWorkingDays(ctx context.Context, centerID int64, days []models.CenterDay) error {
	if err := r.db.WithContext(ctx).Where("center_id = ?", centerID).Delete(&models.CenterDay{}).Error; err != nil {
		return err
	}
	if len(days) == 0 {
		return nil
	}
	for i := range days {
		days[i].CenterID = centerID
	}
	return r.db.WithContext(ctx).Create(&days).Error
}

// Delete removes the center; child rows cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Center{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistingTypeNames filters names down to those present in the types table.
func (r *Repository) ExistingTypeNames(ctx context.Context, names []string) ([]string, error) {
	var found []string
	err := r.db.WithContext(ctx).
		Model(&models.Type{}).
		Where("name IN ?", names).
		Pluck("name", &found).Error
	if err != nil {
		return nil, err
	}
	return found, nil
}

// AddCollects links the center to the given type names. Existing links are
// left untouched.
func (r *Repository) AddCollects(ctx context.Context, centerID int64, names []string) error {
	if len(names) == 0 {
		return nil
	}
	links := make([]models.CenterCollect, 0, len(names))
	for _, name := range names {
		links = append(links, models.CenterCollect{CenterID: centerID, TypeName: name})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&links).Error
}

// AddSchedules appends pickup slots for the center.
func (r *Repository) AddSchedules(ctx context.Context, schedules []models.Schedule) error {
	if len(schedules) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&schedules).Error
}

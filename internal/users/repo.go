package users

import (
	"context"

	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/enums"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository encapsulates user persistence, including the per-role extension rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a user repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser inserts the identity row.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// CreateCustomer inserts the customer extension row.
func (r *Repository) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// CreateCollector inserts the collector extension row.
func (r *Repository) CreateCollector(ctx context.Context, collector *models.Collector) error {
	return r.db.WithContext(ctx).Create(collector).Error
}

// FindByID loads a user with its role extension.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Collector").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail loads a user by its unique email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Collector").
		First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns a page of users ordered by id plus the total row count.
func (r *Repository) List(ctx context.Context, p pagination.Params) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.User
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Collector").
		Order("id ASC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies a column patch to the user row.
func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the user; extension rows cascade.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePasswordHash overwrites the stored password hash.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", hash).Error
}

// SetRefreshToken persists (or clears) the user's refresh token.
func (r *Repository) SetRefreshToken(ctx context.Context, id int64, token *string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("refresh_token", token).Error
}

// FindCustomerByUserID resolves the customer extension for a user.
func (r *Repository) FindCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).First(&customer, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

type recycleStatRow struct {
	Category string `gorm:"column:category"`
	TotalKg  int    `gorm:"column:total_kg"`
}

// RecycleStats aggregates dropped-off quantities per material category for
// the customer's material orders.
func (r *Repository) RecycleStats(ctx context.Context, customerID int64) ([]recycleStatRow, error) {
	var rows []recycleStatRow
	err := r.db.WithContext(ctx).
		Table("order_items oi").
		Select("m.category AS category, SUM(oi.quantity) AS total_kg").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("JOIN types t ON t.name = oi.type_name").
		Joins("JOIN materials m ON m.id = t.material_id").
		Where("o.customer_id = ? AND o.type = ?", customerID, enums.OrderTypeMaterial).
		Group("m.category").
		Order("m.category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

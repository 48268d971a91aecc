package orders

import (
	"context"

	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/enums"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository wraps order persistence plus the customer-points bookkeeping
// that rides along with order creation.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the order together with nested items and rewards.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// TypePoints maps the resolvable subset of names to their point values.
// Unknown names are simply absent from the result.
func (r *Repository) TypePoints(ctx context.Context, names []string) (map[string]int, error) {
	points := map[string]int{}
	if len(names) == 0 {
		return points, nil
	}

	var rows []models.Type
	err := r.db.WithContext(ctx).
		Select("name", "points").
		Where("name IN ?", names).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		points[row.Name] = row.Points
	}
	return points, nil
}

// TypesByName loads full type rows for the resolvable subset of names.
func (r *Repository) TypesByName(ctx context.Context, names []string) (map[string]models.Type, error) {
	catalog := map[string]models.Type{}
	if len(names) == 0 {
		return catalog, nil
	}

	var rows []models.Type
	err := r.db.WithContext(ctx).Where("name IN ?", names).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		catalog[row.Name] = row
	}
	return catalog, nil
}

// AddCustomerPoints shifts the customer balance by delta, which may be
// negative for redemptions.
func (r *Repository) AddCustomerPoints(ctx context.Context, customerID int64, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		Update("points", gorm.Expr("points + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindCustomerByUserID resolves the customer extension with the user row
// attached.
func (r *Repository) FindCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// ListAll returns one page of orders, newest id first, with the full
// relational graph preloaded.
func (r *Repository) ListAll(ctx context.Context, p pagination.Params) ([]models.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Customer.User").
		Preload("Center").
		Preload("Items").
		Preload("Rewards.Reward").
		Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// FindByID loads one order with the full relational graph.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Customer.User").
		Preload("Center").
		Preload("Items").
		Preload("Rewards.Reward").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByCustomer returns the customer's orders of one type, newest date
// first, optionally narrowed to a status.
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64, orderType enums.OrderType, status *enums.OrderStatus) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Rewards.Reward").
		Where("customer_id = ? AND type = ?", customerID, orderType)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var orders []models.Order
	if err := query.Order("date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

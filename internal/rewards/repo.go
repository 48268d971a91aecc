package rewards

import (
	"context"

	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository wraps reward catalog, favorite and cart persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, reward *models.Reward) error {
	return r.db.WithContext(ctx).Create(reward).Error
}

// List returns one page of rewards ordered by id.
func (r *Repository) List(ctx context.Context, p pagination.Params) ([]models.Reward, int64, error) {
	return r.list(ctx, p, r.db.WithContext(ctx).Model(&models.Reward{}))
}

// ListByType filters rewards on type, case-insensitively.
func (r *Repository) ListByType(ctx context.Context, rewardType string, p pagination.Params) ([]models.Reward, int64, error) {
	scoped := r.db.WithContext(ctx).Model(&models.Reward{}).Where("LOWER(type) = LOWER(?)", rewardType)
	return r.list(ctx, p, scoped)
}

func (r *Repository) list(ctx context.Context, p pagination.Params, query *gorm.DB) ([]models.Reward, int64, error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var result []models.Reward
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

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Reward, error) {
	var reward models.Reward
	if err := r.db.WithContext(ctx).First(&reward, id).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (r *Repository) Update(ctx context.Context, id int64, patch map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Reward{}).Where("id = ?", id).Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Reward{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindCustomerByUserID resolves the customer extension, with the user row
// attached for address lookups.
func (r *Repository) FindCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// FavoriteRewardIDs returns the subset of rewardIDs the customer has
// favorited.
func (r *Repository) FavoriteRewardIDs(ctx context.Context, customerID int64, rewardIDs []int64) (map[int64]bool, error) {
	favorites := map[int64]bool{}
	if len(rewardIDs) == 0 {
		return favorites, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.CustomerReward{}).
		Where("customer_id = ? AND reward_id IN ?", customerID, rewardIDs).
		Pluck("reward_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		favorites[id] = true
	}
	return favorites, nil
}

// FindFavorite loads the favorite link row if present.
func (r *Repository) FindFavorite(ctx context.Context, customerID, rewardID int64) (*models.CustomerReward, error) {
	var favorite models.CustomerReward
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND reward_id = ?", customerID, rewardID).
		First(&favorite).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *Repository) CreateFavorite(ctx context.Context, favorite *models.CustomerReward) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

func (r *Repository) DeleteFavorite(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.CustomerReward{}, id).Error
}

// FindCartItem loads the cart line for the customer/reward pair.
func (r *Repository) FindCartItem(ctx context.Context, customerID, rewardID int64) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND reward_id = ?", customerID, rewardID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repository) CreateCartItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *Repository) UpdateCartQuantity(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		Update("quantity", quantity).Error
}

func (r *Repository) DeleteCartItem(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, id).Error
}

// ListCart returns the customer's cart lines with rewards joined, oldest
// first.
func (r *Repository) ListCart(ctx context.Context, customerID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Reward").
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ClearCart drops every cart line for the customer.
func (r *Repository) ClearCart(ctx context.Context, customerID int64) error {
	return r.db.WithContext(ctx).Where("customer_id = ?", customerID).Delete(&models.CartItem{}).Error
}

package rewards

import (
	"context"
	"errors"

	"github.com/minhle2212044/greencycle-backend/pkg/db"
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	pkgerrors "github.com/minhle2212044/greencycle-backend/pkg/errors"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
	"github.com/minhle2212044/greencycle-backend/pkg/storage/gcs"
	"gorm.io/gorm"
)

const imageFolder = "rewards"

// Toggle and cart acknowledgment messages returned verbatim to clients.
const (
	msgFavoriteAdded   = "added"
	msgFavoriteRemoved = "removed"
	msgItemAdded       = "Item added to cart"
	msgItemRemoved     = "Item removed from cart"
	msgQuantityUp      = "Quantity increased"
	msgQuantityDown    = "Quantity decreased"
)

// ServiceParams groups dependencies for the rewards service. Uploader may be
// nil when image uploads are disabled.
type ServiceParams struct {
	DB       *db.Client
	Uploader gcs.Uploader
}

// Service exposes reward catalog, favorite and cart operations. Cart and
// favorite calls take the authenticated user id and resolve the customer
// extension themselves.
type Service interface {
	Create(ctx context.Context, input CreateRewardInput, image *gcs.File) (RewardDTO, error)
	List(ctx context.Context, userID int64, page, limit int) (RewardsPageDTO, error)
	ListByType(ctx context.Context, userID int64, rewardType string, page, limit int) (RewardsPageDTO, error)
	GetByID(ctx context.Context, userID, id int64) (RewardDTO, error)
	Update(ctx context.Context, id int64, input UpdateRewardInput, image *gcs.File) (RewardDTO, error)
	Delete(ctx context.Context, id int64) error
	ToggleFavorite(ctx context.Context, userID, rewardID int64) (FavoriteResultDTO, error)
	AddToCart(ctx context.Context, userID, rewardID int64) (CartMutationDTO, error)
	IncrementQuantity(ctx context.Context, userID, rewardID int64) (CartMutationDTO, error)
	DecrementQuantity(ctx context.Context, userID, rewardID int64) (CartMutationDTO, error)
	ListCart(ctx context.Context, userID int64) ([]CartItemDTO, error)
	CartSummary(ctx context.Context, userID int64) (CartSummaryDTO, error)
}

type service struct {
	db       *db.Client
	uploader gcs.Uploader
}

func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "db client is required")
	}
	return &service{db: params.DB, uploader: params.Uploader}, nil
}

func (s *service) Create(ctx context.Context, input CreateRewardInput, image *gcs.File) (RewardDTO, error) {
	imageURL, err := gcs.UploadFile(ctx, s.uploader, imageFolder, image)
	if err != nil {
		return RewardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload reward image")
	}

	reward := &models.Reward{
		Name:        input.Name,
		Type:        input.Type,
		Description: input.Description,
		Points:      input.Points,
		ImageURL:    imageURL,
	}
	repo := NewRepository(s.db.DB())
	if err := repo.Create(ctx, reward); err != nil {
		return RewardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create reward")
	}
	return toRewardDTO(reward, false), nil
}

func (s *service) List(ctx context.Context, userID int64, page, limit int) (RewardsPageDTO, error) {
	p := pagination.Normalize(page, limit)
	repo := NewRepository(s.db.DB())

	result, total, err := repo.List(ctx, p)
	if err != nil {
		return RewardsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rewards")
	}
	return s.annotatePage(ctx, repo, userID, result, total, p)
}

func (s *service) ListByType(ctx context.Context, userID int64, rewardType string, page, limit int) (RewardsPageDTO, error) {
	p := pagination.Normalize(page, limit)
	repo := NewRepository(s.db.DB())

	result, total, err := repo.ListByType(ctx, rewardType, p)
	if err != nil {
		return RewardsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rewards by type")
	}
	return s.annotatePage(ctx, repo, userID, result, total, p)
}

func (s *service) annotatePage(ctx context.Context, repo *Repository, userID int64, result []models.Reward, total int64, p pagination.Params) (RewardsPageDTO, error) {
	favorites := map[int64]bool{}
	if customer, err := repo.FindCustomerByUserID(ctx, userID); err == nil {
		ids := make([]int64, 0, len(result))
		for _, reward := range result {
			ids = append(ids, reward.ID)
		}
		favorites, err = repo.FavoriteRewardIDs(ctx, customer.ID, ids)
		if err != nil {
			return RewardsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorites")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return RewardsPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve customer")
	}

	data := make([]RewardDTO, 0, len(result))
	for i := range result {
		data = append(data, toRewardDTO(&result[i], favorites[result[i].ID]))
	}
	return RewardsPageDTO{Data: data, PageInfo: pagination.NewPageInfo(total, p)}, nil
}

func (s *service) GetByID(ctx context.Context, userID, id int64) (RewardDTO, error) {
	repo := NewRepository(s.db.DB())
	reward, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RewardDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "reward not found")
		}
		return RewardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reward")
	}

	isFavorite := false
	customer, err := repo.FindCustomerByUserID(ctx, userID)
	switch {
	case err == nil:
		if _, ferr := repo.FindFavorite(ctx, customer.ID, id); ferr == nil {
			isFavorite = true
		} else if !errors.Is(ferr, gorm.ErrRecordNotFound) {
			return RewardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, ferr, "load favorite")
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return RewardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve customer")
	}
	return toRewardDTO(reward, isFavorite), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateRewardInput, image *gcs.File) (RewardDTO, error) {
	patch := map[string]interface{}{}
	if input.Name != nil {
		patch["name"] = *input.Name
	}
	if input.Type != nil {
		patch["type"] = *input.Type
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.Points != nil {
		patch["points"] = *input.Points
	}

	imageURL, err := gcs.UploadFile(ctx, s.uploader, imageFolder, image)
	if err != nil {
		return RewardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload reward image")
	}
	if imageURL != nil {
		patch["image_url"] = *imageURL
	}

	repo := NewRepository(s.db.DB())
	if len(patch) > 0 {
		if err := repo.Update(ctx, id, patch); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return RewardDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "reward not found")
			}
			return RewardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update reward")
		}
	}

	reward, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RewardDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "reward not found")
		}
		return RewardDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reward")
	}
	return toRewardDTO(reward, false), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	repo := NewRepository(s.db.DB())
	if err := repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "reward not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete reward")
	}
	return nil
}

// ToggleFavorite flips the favorite link and reports which direction it went.
func (s *service) ToggleFavorite(ctx context.Context, userID, rewardID int64) (FavoriteResultDTO, error) {
	repo := NewRepository(s.db.DB())

	customer, err := s.requireCustomer(ctx, repo, userID)
	if err != nil {
		return FavoriteResultDTO{}, err
	}
	if _, err := repo.FindByID(ctx, rewardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FavoriteResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "reward not found")
		}
		return FavoriteResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reward")
	}

	favorite, err := repo.FindFavorite(ctx, customer.ID, rewardID)
	switch {
	case err == nil:
		if err := repo.DeleteFavorite(ctx, favorite.ID); err != nil {
			return FavoriteResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
		}
		return FavoriteResultDTO{Message: msgFavoriteRemoved}, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		link := &models.CustomerReward{CustomerID: customer.ID, RewardID: rewardID}
		if err := repo.CreateFavorite(ctx, link); err != nil {
			return FavoriteResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
		}
		return FavoriteResultDTO{Message: msgFavoriteAdded}, nil
	default:
		return FavoriteResultDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load favorite")
	}
}

// AddToCart inserts a single-quantity line, or bumps the quantity when the
// reward is already in the cart.
func (s *service) AddToCart(ctx context.Context, userID, rewardID int64) (CartMutationDTO, error) {
	var message string
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		customer, err := s.requireCustomer(ctx, repo, userID)
		if err != nil {
			return err
		}
		if _, err := repo.FindByID(ctx, rewardID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "reward not found")
			}
			return err
		}

		item, err := repo.FindCartItem(ctx, customer.ID, rewardID)
		switch {
		case err == nil:
			message = msgQuantityUp
			return repo.UpdateCartQuantity(ctx, item.ID, item.Quantity+1)
		case errors.Is(err, gorm.ErrRecordNotFound):
			message = msgItemAdded
			return repo.CreateCartItem(ctx, &models.CartItem{
				CustomerID: customer.ID,
				RewardID:   rewardID,
				Quantity:   1,
			})
		default:
			return err
		}
	})
	if err != nil {
		return CartMutationDTO{}, wrapCartErr(err, "add to cart")
	}
	return CartMutationDTO{Message: message}, nil
}

func (s *service) IncrementQuantity(ctx context.Context, userID, rewardID int64) (CartMutationDTO, error) {
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		customer, err := s.requireCustomer(ctx, repo, userID)
		if err != nil {
			return err
		}
		item, err := repo.FindCartItem(ctx, customer.ID, rewardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
			}
			return err
		}
		return repo.UpdateCartQuantity(ctx, item.ID, item.Quantity+1)
	})
	if err != nil {
		return CartMutationDTO{}, wrapCartErr(err, "increase quantity")
	}
	return CartMutationDTO{Message: msgQuantityUp}, nil
}

// DecrementQuantity lowers the line quantity, deleting the line once it
// would drop below one.
func (s *service) DecrementQuantity(ctx context.Context, userID, rewardID int64) (CartMutationDTO, error) {
	var message string
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		customer, err := s.requireCustomer(ctx, repo, userID)
		if err != nil {
			return err
		}
		item, err := repo.FindCartItem(ctx, customer.ID, rewardID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "cart item not found")
			}
			return err
		}

		if item.Quantity <= 1 {
			message = msgItemRemoved
			return repo.DeleteCartItem(ctx, item.ID)
		}
		message = msgQuantityDown
		return repo.UpdateCartQuantity(ctx, item.ID, item.Quantity-1)
	})
	if err != nil {
		return CartMutationDTO{}, wrapCartErr(err, "decrease quantity")
	}
	return CartMutationDTO{Message: message}, nil
}

func (s *service) ListCart(ctx context.Context, userID int64) ([]CartItemDTO, error) {
	repo := NewRepository(s.db.DB())

	customer, err := s.requireCustomer(ctx, repo, userID)
	if err != nil {
		return nil, err
	}
	items, err := repo.ListCart(ctx, customer.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart")
	}

	out := make([]CartItemDTO, 0, len(items))
	for i := range items {
		out = append(out, toCartItemDTO(&items[i]))
	}
	return out, nil
}

// CartSummary aggregates the cart for the checkout screen: quantities, point
// total, the customer's balance and their delivery address.
func (s *service) CartSummary(ctx context.Context, userID int64) (CartSummaryDTO, error) {
	repo := NewRepository(s.db.DB())

	customer, err := s.requireCustomer(ctx, repo, userID)
	if err != nil {
		return CartSummaryDTO{}, err
	}
	items, err := repo.ListCart(ctx, customer.ID)
	if err != nil {
		return CartSummaryDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart")
	}

	summary := CartSummaryDTO{
		Items:  make([]CartItemDTO, 0, len(items)),
		Points: customer.Points,
	}
	if customer.User != nil {
		summary.Address = customer.User.Address
	}
	for i := range items {
		dto := toCartItemDTO(&items[i])
		summary.Items = append(summary.Items, dto)
		summary.TotalQuantity += dto.Quantity
		summary.TotalPoints += dto.Total
	}
	return summary, nil
}

func (s *service) requireCustomer(ctx context.Context, repo *Repository, userID int64) (*models.Customer, error) {
	customer, err := repo.FindCustomerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve customer")
	}
	return customer, nil
}

func wrapCartErr(err error, message string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}

package rewards

import (
	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
)

// CreateRewardInput is the reward creation payload. The image rides in as a
// separate multipart part.
type CreateRewardInput struct {
	Name        string  `json:"name" validate:"required"`
	Type        string  `json:"type" validate:"required"`
	Description *string `json:"description,omitempty"`
	Points      int     `json:"points" validate:"gt=0"`
}

// UpdateRewardInput patches a reward. Nil fields are untouched.
type UpdateRewardInput struct {
	Name        *string `json:"name,omitempty"`
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
	Points      *int    `json:"points,omitempty" validate:"omitempty,gt=0"`
}

// RewardDTO is the outward reward shape. IsFavorite reflects the requesting
// customer and stays false for callers without a customer extension.
type RewardDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
	Points      int     `json:"points"`
	ImageURL    *string `json:"imageUrl,omitempty"`
	IsFavorite  bool    `json:"isFavorite"`
}

// RewardsPageDTO is one page of rewards with flat pagination fields.
type RewardsPageDTO struct {
	Data []RewardDTO `json:"data"`
	pagination.PageInfo
}

// FavoriteResultDTO reports the toggle direction.
type FavoriteResultDTO struct {
	Message string `json:"message"`
}

// CartMutationDTO acknowledges a cart change.
type CartMutationDTO struct {
	Message string `json:"message"`
}

// CartItemDTO is one cart line joined with its reward.
type CartItemDTO struct {
	ID       int64   `json:"id"`
	RewardID int64   `json:"rewardId"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Points   int     `json:"points"`
	ImageURL *string `json:"imageUrl,omitempty"`
	Quantity int     `json:"quantity"`
	Total    int     `json:"total"`
}

// CartSummaryDTO is the checkout preview: cart lines, aggregate totals, the
// customer's current balance and delivery address.
type CartSummaryDTO struct {
	Items         []CartItemDTO `json:"items"`
	TotalQuantity int           `json:"totalQuantity"`
	TotalPoints   int           `json:"totalPoints"`
	Points        int           `json:"points"`
	Address       *string       `json:"address,omitempty"`
}

func toRewardDTO(reward *models.Reward, isFavorite bool) RewardDTO {
	return RewardDTO{
		ID:          reward.ID,
		Name:        reward.Name,
		Type:        reward.Type,
		Description: reward.Description,
		Points:      reward.Points,
		ImageURL:    reward.ImageURL,
		IsFavorite:  isFavorite,
	}
}

func toCartItemDTO(item *models.CartItem) CartItemDTO {
	dto := CartItemDTO{
		ID:       item.ID,
		RewardID: item.RewardID,
		Quantity: item.Quantity,
	}
	if item.Reward != nil {
		dto.Name = item.Reward.Name
		dto.Type = item.Reward.Type
		dto.Points = item.Reward.Points
		dto.ImageURL = item.Reward.ImageURL
		dto.Total = item.Reward.Points * item.Quantity
	}
	return dto
}

package orders

import (
	"time"

	"github.com/minhle2212044/greencycle-backend/pkg/db/models"
	"github.com/minhle2212044/greencycle-backend/pkg/pagination"
)

// receiveTimeLayout formats the redemption delivery timestamp for detail
// views.
const receiveTimeLayout = "02/01/2006 15:04"

// MaterialOrderItemInput is one collected line keyed by type name. Names
// that match no catalog type earn nothing but do not fail the order.
type MaterialOrderItemInput struct {
	TypeName string `json:"typeName" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// CreateMaterialOrderInput is the drop-off order payload. The image rides in
// as a separate multipart part.
type CreateMaterialOrderInput struct {
	UserID    int64                    `json:"userId" validate:"required,gt=0"`
	CenterID  *int64                   `json:"centerId,omitempty"`
	Transport string                   `json:"transport" validate:"required"`
	Status    string                   `json:"status,omitempty" validate:"omitempty,oneof=pending accepted completed canceled"`
	Date      time.Time                `json:"date" validate:"required"`
	Items     []MaterialOrderItemInput `json:"items" validate:"required,min=1,dive"`
	Note      *string                  `json:"note,omitempty"`
	Schedule  *string                  `json:"schedule,omitempty"`
}

// OrderItemDTO is one material line of an order.
type OrderItemDTO struct {
	TypeName string `json:"typeName"`
	Quantity int    `json:"quantity"`
}

// OrderRewardDTO is one redeemed reward line of an order.
type OrderRewardDTO struct {
	RewardID int64  `json:"rewardId"`
	Name     string `json:"name"`
	Points   int    `json:"points"`
	Quantity int    `json:"quantity"`
}

// OrderDTO is the outward order shape shared by listings.
type OrderDTO struct {
	ID           int64            `json:"id"`
	Code         string           `json:"code"`
	CustomerID   int64            `json:"customerId"`
	CustomerName string           `json:"customerName,omitempty"`
	CenterID     *int64           `json:"centerId,omitempty"`
	CenterName   string           `json:"centerName,omitempty"`
	Transport    string           `json:"transport"`
	Status       string           `json:"status"`
	Points       int              `json:"points"`
	Type         string           `json:"type"`
	Date         time.Time        `json:"date"`
	ReceiveDate  *time.Time       `json:"receiveDate,omitempty"`
	Note         *string          `json:"note,omitempty"`
	Schedule     *string          `json:"schedule,omitempty"`
	ImageURL     *string          `json:"imageUrl,omitempty"`
	Items        []OrderItemDTO   `json:"items,omitempty"`
	Rewards      []OrderRewardDTO `json:"rewards,omitempty"`
}

// OrdersPageDTO is one page of orders with pagination meta.
type OrdersPageDTO struct {
	Data []OrderDTO      `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

// RewardOrderLineDTO is a redemption line with its computed total.
type RewardOrderLineDTO struct {
	RewardID int64   `json:"rewardId"`
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl,omitempty"`
	Points   int     `json:"points"`
	Quantity int     `json:"quantity"`
	Total    int     `json:"total"`
}

// RewardOrderDetailDTO is the redemption receipt: lines with totals, the
// grand total and the formatted delivery time.
type RewardOrderDetailDTO struct {
	ID          int64                `json:"id"`
	Code        string               `json:"code"`
	Status      string               `json:"status"`
	Date        time.Time            `json:"date"`
	ReceiveTime string               `json:"receiveTime,omitempty"`
	Lines       []RewardOrderLineDTO `json:"lines"`
	Total       int                  `json:"total"`
}

// SenderDTO carries the dropping-off customer's contact block.
type SenderDTO struct {
	Name    string  `json:"name"`
	Tel     *string `json:"tel,omitempty"`
	Address *string `json:"address,omitempty"`
}

// MaterialOrderLineDTO is a drop-off line enriched with catalog metadata.
// Points and hazard data stay zero-valued when the name no longer resolves.
type MaterialOrderLineDTO struct {
	TypeName    string `json:"typeName"`
	Quantity    int    `json:"quantity"`
	Points      int    `json:"points"`
	IsHazardous bool   `json:"isHazardous"`
	Total       int    `json:"total"`
}

// MaterialOrderDetailDTO is the drop-off receipt with sender info and per
// item catalog metadata.
type MaterialOrderDetailDTO struct {
	ID        int64                  `json:"id"`
	Code      string                 `json:"code"`
	Status    string                 `json:"status"`
	Transport string                 `json:"transport"`
	Date      time.Time              `json:"date"`
	Sender    SenderDTO              `json:"sender"`
	Items     []MaterialOrderLineDTO `json:"items"`
	Points    int                    `json:"points"`
	Note      *string                `json:"note,omitempty"`
	Schedule  *string                `json:"schedule,omitempty"`
	ImageURL  *string                `json:"imageUrl,omitempty"`
}

func toOrderDTO(order *models.Order) OrderDTO {
	dto := OrderDTO{
		ID:          order.ID,
		Code:        order.Code,
		CustomerID:  order.CustomerID,
		CenterID:    order.CenterID,
		Transport:   order.Transport,
		Status:      string(order.Status),
		Points:      order.Points,
		Type:        string(order.Type),
		Date:        order.Date,
		ReceiveDate: order.ReceiveDate,
		Note:        order.Note,
		Schedule:    order.Schedule,
		ImageURL:    order.ImageURL,
	}
	if order.Customer != nil && order.Customer.User != nil {
		dto.CustomerName = order.Customer.User.Name
	}
	if order.Center != nil {
		dto.CenterName = order.Center.Name
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, OrderItemDTO{TypeName: item.TypeName, Quantity: item.Quantity})
	}
	for _, line := range order.Rewards {
		rewardDTO := OrderRewardDTO{RewardID: line.RewardID, Quantity: line.Quantity}
		if line.Reward != nil {
			rewardDTO.Name = line.Reward.Name
			rewardDTO.Points = line.Reward.Points
		}
		dto.Rewards = append(dto.Rewards, rewardDTO)
	}
	return dto
}

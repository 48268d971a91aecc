package models

import (
	"time"

	"github.com/minhle2212044/greencycle-backend/pkg/enums"
)

// Order records either a material drop-off (positive points) or a reward
// redemption (negative points). The sign convention keeps the customer's
// balance consistent with the sum of their order points.
type Order struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Code        string            `gorm:"column:code;not null"`
	CustomerID  int64             `gorm:"column:customer_id;not null;index"`
	CenterID    *int64            `gorm:"column:center_id"`
	Transport   string            `gorm:"column:transport;not null"`
	Status      enums.OrderStatus `gorm:"column:status;type:text;not null"`
	Points      int               `gorm:"column:points;not null"`
	Type        enums.OrderType   `gorm:"column:type;type:text;not null"`
	Date        time.Time         `gorm:"column:date;not null"`
	ReceiveDate *time.Time        `gorm:"column:receive_date"`
	Note        *string           `gorm:"column:note"`
	Schedule    *string           `gorm:"column:schedule"`
	ImageURL    *string           `gorm:"column:image_url"`
	Customer    *Customer         `gorm:"foreignKey:CustomerID"`
	Center      *Center           `gorm:"foreignKey:CenterID"`
	Items       []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Rewards     []OrderReward     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import "time"

// CartItem holds one reward line of a customer's cart. Quantity never drops
// below one; decrementing at one removes the row instead.
type CartItem struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID int64     `gorm:"column:customer_id;not null;uniqueIndex:idx_cart_items_pair"`
	RewardID   int64     `gorm:"column:reward_id;not null;uniqueIndex:idx_cart_items_pair"`
	Quantity   int       `gorm:"column:quantity;not null;default:1"`
	Reward     *Reward   `gorm:"foreignKey:RewardID"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

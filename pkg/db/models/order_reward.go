package models

// OrderReward is one redeemed reward line of a redemption order, mirroring
// the customer's cart at checkout time.
type OrderReward struct {
	ID       int64   `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID  int64   `gorm:"column:order_id;not null;index"`
	RewardID int64   `gorm:"column:reward_id;not null"`
	Quantity int     `gorm:"column:quantity;not null"`
	Reward   *Reward `gorm:"foreignKey:RewardID"`
}

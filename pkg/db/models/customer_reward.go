package models

import "time"

// CustomerReward marks a reward as a customer's favorite. Toggling deletes
// or recreates the row, so the unique pair is the whole payload.
type CustomerReward struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerID int64     `gorm:"column:customer_id;not null;uniqueIndex:idx_customer_rewards_pair"`
	RewardID   int64     `gorm:"column:reward_id;not null;uniqueIndex:idx_customer_rewards_pair"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

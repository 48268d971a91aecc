package models

import "time"

// Reward is a redeemable catalog entry priced in points.
type Reward struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Type        string    `gorm:"column:type;not null"`
	Description *string   `gorm:"column:description"`
	Points      int       `gorm:"column:points;not null"`
	ImageURL    *string   `gorm:"column:image_url"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import "time"

// Type is a concrete collectable material type. Name is the globally unique
// natural key used by order items and center collectables.
type Type struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;type:text;not null;uniqueIndex"`
	Points      int       `gorm:"column:points;not null"`
	IsHazardous bool      `gorm:"column:is_hazardous;not null;default:false"`
	ImageURL    *string   `gorm:"column:image_url"`
	MaterialID  int64     `gorm:"column:material_id;not null;index"`
	Material    *Material `gorm:"foreignKey:MaterialID"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

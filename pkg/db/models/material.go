package models

import "time"

// Material is a recyclable material category grouping its concrete types.
type Material struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Category    string    `gorm:"column:category;not null"`
	Description *string   `gorm:"column:description"`
	Instruction *string   `gorm:"column:instruction"`
	Types       []Type    `gorm:"foreignKey:MaterialID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

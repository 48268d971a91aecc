package models

import "time"

// Customer extends a User with the points balance used by material and
// reward orders. Points may go negative; redemptions are not balance-checked.
type Customer struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex"`
	Points    int       `gorm:"column:points;not null;default:0"`
	User      *User     `gorm:"foreignKey:UserID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

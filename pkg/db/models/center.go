package models

import "time"

// Center is a physical collection point with working hours, collectable
// material types and pickup schedules.
type Center struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string          `gorm:"column:name;not null"`
	Address      string          `gorm:"column:address;not null"`
	ContactName  *string         `gorm:"column:contact_name"`
	ContactEmail *string         `gorm:"column:contact_email"`
	ContactTel   *string         `gorm:"column:contact_tel"`
	ImageURL     *string         `gorm:"column:image_url"`
	CollectorID  *int64          `gorm:"column:collector_id"`
	WorkingDays  []CenterDay     `gorm:"foreignKey:CenterID;constraint:OnDelete:CASCADE"`
	Collects     []CenterCollect `gorm:"foreignKey:CenterID;constraint:OnDelete:CASCADE"`
	Schedules    []Schedule      `gorm:"foreignKey:CenterID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

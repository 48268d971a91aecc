package models

import (
	"time"

	"github.com/minhle2212044/greencycle-backend/pkg/enums"
)

// User represents the canonical identity entity. Exactly one extension row
// (Customer or Collector) exists per user, chosen by Role at signup.
type User struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Name         string         `gorm:"column:name;not null"`
	Tel          *string        `gorm:"column:tel"`
	DOB          *time.Time     `gorm:"column:dob"`
	Address      *string        `gorm:"column:address"`
	Gender       *string        `gorm:"column:gender"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null"`
	RefreshToken *string        `gorm:"column:refresh_token"`
	Customer     *Customer      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Collector    *Collector     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import "time"

// Schedule is an appended pickup slot for a center.
type Schedule struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CenterID  int64     `gorm:"column:center_id;not null;index"`
	StartTime time.Time `gorm:"column:start_time;not null"`
	EndTime   time.Time `gorm:"column:end_time;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

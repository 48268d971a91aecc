package models

// CenterDay is one weekday row of a center's working hours. Updates replace
// the full set for the center rather than patching individual rows.
type CenterDay struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CenterID  int64  `gorm:"column:center_id;not null;index"`
	Day       string `gorm:"column:day;not null"`
	StartTime string `gorm:"column:start_time;not null"`
	EndTime   string `gorm:"column:end_time;not null"`
}

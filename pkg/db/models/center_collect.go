package models

// CenterCollect links a center to a material type it accepts. The pair is
// unique; re-adding an existing link is a no-op.
type CenterCollect struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CenterID int64  `gorm:"column:center_id;not null;uniqueIndex:idx_center_collects_center_type"`
	TypeName string `gorm:"column:type_name;not null;uniqueIndex:idx_center_collects_center_type"`
}

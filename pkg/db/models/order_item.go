package models

// OrderItem is one material line of a drop-off order, keyed by the type's
// natural name as submitted by the client.
type OrderItem struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID  int64  `gorm:"column:order_id;not null;index"`
	TypeName string `gorm:"column:type_name;not null"`
	Quantity int    `gorm:"column:quantity;not null"`
}

package models

import "time"

// Order lifecycle statuses. Cancellation is reachable from any
// non-terminal state; delivered is terminal.
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// Order is a placed customer order. TotalAmount is computed once at
// creation from the item line totals and never recomputed.
type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	UserID          uint        `json:"user_id" gorm:"index"`
	Status          string      `json:"status" gorm:"type:varchar(30);default:pending"`
	TotalAmount     int64       `json:"total_amount"`
	DeliveryAddress string      `json:"delivery_address" gorm:"type:text"`
	Phone           string      `json:"phone" gorm:"type:varchar(30)"`
	PaymentMethod   string      `json:"payment_method" gorm:"type:varchar(30)"`
	Items           []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"-"`
}

// OrderItem snapshots the purchased product or pack variant at order
// time so historical orders survive later catalog edits.
type OrderItem struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	OrderID       uint   `json:"order_id" gorm:"index"`
	ProductID     *uint  `json:"product_id,omitempty"`
	PackVariantID *uint  `json:"pack_variant_id,omitempty"`
	NameSnapshot  string `json:"name_snapshot" gorm:"type:varchar(255)"`
	UnitPrice     int64  `json:"unit_price"`
	Qty           int    `json:"qty"`
	LineTotal     int64  `json:"line_total"`
}

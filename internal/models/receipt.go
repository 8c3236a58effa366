package models

import "time"

// Receipt statuses.
const (
	ReceiptStatusPending  = "pending"
	ReceiptStatusApproved = "approved"
	ReceiptStatusRejected = "rejected"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusVerified = "verified"
	PaymentStatusFailed   = "failed"
)

// Receipt is a customer-uploaded proof of payment awaiting admin review.
type Receipt struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"index"`
	UserID     uint      `json:"user_id" gorm:"index"`
	FileURL    string    `json:"file_url" gorm:"type:varchar(512)"`
	FileKey    string    `json:"-" gorm:"type:varchar(255)"`
	UploadedAt time.Time `json:"uploaded_at"`
	Status     string    `json:"status" gorm:"type:varchar(20);default:pending"`
	AdminNote  string    `json:"admin_note,omitempty" gorm:"type:text"`
}

// Payment tracks the payment state of one order. A pending row is
// created alongside the order.
type Payment struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	OrderID    uint       `json:"order_id" gorm:"index"`
	Method     string     `json:"method" gorm:"type:varchar(30)"`
	Reference  string     `json:"reference,omitempty" gorm:"type:varchar(100)"`
	Status     string     `json:"status" gorm:"type:varchar(20);default:pending"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	CreatedAt  time.Time  `json:"-"`
	UpdatedAt  time.Time  `json:"-"`
}

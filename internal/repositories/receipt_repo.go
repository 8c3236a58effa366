package repositories

import "foodnova/internal/models"

// ReceiptRepository defines the interface for receipt and payment data
// access. Payments live here because both are reviewed together.
type ReceiptRepository interface {
	GetByID(id uint) (*models.Receipt, error)
	GetByOrder(orderID uint) (*models.Receipt, error)
	Create(receipt *models.Receipt) error
	Update(receipt *models.Receipt) error

	GetPaymentByID(id uint) (*models.Payment, error)
	GetPaymentByOrder(orderID uint) (*models.Payment, error)
	UpdatePayment(payment *models.Payment) error
}

package repositories

import (
	"errors"
	"fmt"

	"foodnova/internal/models"

	"gorm.io/gorm"
)

// GORMReceiptRepository is a GORM implementation of ReceiptRepository.
type GORMReceiptRepository struct {
	db *gorm.DB
}

// NewGORMReceiptRepository creates a new instance of GORMReceiptRepository.
func NewGORMReceiptRepository(db *gorm.DB) *GORMReceiptRepository {
	return &GORMReceiptRepository{db: db}
}

// GetByID retrieves a receipt by its ID.
func (r *GORMReceiptRepository) GetByID(id uint) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("receipt %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get receipt %d: %w", id, err)
	}
	return &receipt, nil
}

// GetByOrder retrieves the receipt uploaded for an order.
func (r *GORMReceiptRepository) GetByOrder(orderID uint) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := r.db.First(&receipt, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("receipt for order %d: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get receipt for order %d: %w", orderID, err)
	}
	return &receipt, nil
}

// Create persists a new receipt.
func (r *GORMReceiptRepository) Create(receipt *models.Receipt) error {
	if err := r.db.Create(receipt).Error; err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	return nil
}

// Update saves all fields of an existing receipt.
func (r *GORMReceiptRepository) Update(receipt *models.Receipt) error {
	res := r.db.Save(receipt)
	if res.Error != nil {
		return fmt.Errorf("failed to update receipt: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("receipt %d: %w", receipt.ID, ErrNotFound)
	}
	return nil
}

// GetPaymentByID retrieves a payment by its ID.
func (r *GORMReceiptRepository) GetPaymentByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment %d: %w", id, err)
	}
	return &payment, nil
}

// GetPaymentByOrder retrieves the payment row of an order.
func (r *GORMReceiptRepository) GetPaymentByOrder(orderID uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("payment for order %d: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get payment for order %d: %w", orderID, err)
	}
	return &payment, nil
}

// UpdatePayment saves all fields of an existing payment.
func (r *GORMReceiptRepository) UpdatePayment(payment *models.Payment) error {
	res := r.db.Save(payment)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("payment %d: %w", payment.ID, ErrNotFound)
	}
	return nil
}

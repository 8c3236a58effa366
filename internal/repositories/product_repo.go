package repositories

import "foodnova/internal/models"

// ProductRepository defines the interface for product data access,
// including the guarded stock counters used by the inventory service.
type ProductRepository interface {
	GetAll(activeOnly bool, categoryID *uint) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error

	// AdjustStock applies a signed delta. Negative deltas are guarded so
	// stock never goes below zero; an uncoverable decrement returns
	// ErrInsufficientStock and leaves the row untouched.
	AdjustStock(id uint, delta int) error
	// SetStock replaces the stock counter with an absolute value.
	SetStock(id uint, qty int) error
}

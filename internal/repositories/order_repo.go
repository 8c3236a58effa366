package repositories

import "foodnova/internal/models"

// StockDeduction names one product stock decrement that must commit
// atomically with an order.
type StockDeduction struct {
	ProductID uint
	Qty       int
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id uint) (*models.Order, error)
	GetByUser(userID uint) ([]models.Order, error)
	// Place persists the order with its items, applies every stock
	// deduction and creates the pending payment row in one transaction.
	// Any uncoverable deduction rolls the whole order back.
	Place(order *models.Order, deductions []StockDeduction) error
	UpdateStatus(id uint, status string) error
}

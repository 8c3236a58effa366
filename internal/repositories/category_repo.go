package repositories

import "foodnova/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByName(name string) (*models.Category, error)
	Create(category *models.Category) error
	// Delete removes a category and nulls out the category reference of
	// any product that pointed at it, in one transaction.
	Delete(id uint) error
}

package repositories

import "foodnova/internal/models"

// PackRepository defines the interface for pack data access. Packs own
// variants, variants own items; nested creates and cascading deletes run
// in a single transaction.
type PackRepository interface {
	GetAll(activeOnly bool) ([]models.Pack, error)
	GetByID(id uint, activeOnly bool) (*models.Pack, error)
	Create(pack *models.Pack) error
	Update(pack *models.Pack) error
	Delete(id uint) error

	GetVariant(id uint) (*models.PackVariant, error)
	AddVariant(variant *models.PackVariant) error
	UpdateVariant(variant *models.PackVariant) error
	DeleteVariant(id uint) error

	AddItem(item *models.PackVariantItem) error
	DeleteItem(id uint) error
}

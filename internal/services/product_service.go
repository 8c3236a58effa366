package services

import (
	"foodnova/internal/models"
	"foodnova/internal/repositories"
)

// ProductUpdate carries a partial product update; nil fields are left
// untouched.
type ProductUpdate struct {
	Name       *string `json:"name"`
	Price      *int64  `json:"price" validate:"omitempty,gt=0"`
	StockQty   *int    `json:"stock_qty" validate:"omitempty,gte=0"`
	ImageURL   *string `json:"image_url"`
	CategoryID *uint   `json:"category_id"`
	IsActive   *bool   `json:"is_active"`
}

// ProductService handles admin product management.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ListAll returns every product, active or not.
func (s *ProductService) ListAll() ([]models.Product, error) {
	return s.repo.GetAll(false, nil)
}

// GetByID retrieves a single product.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Create adds a product.
func (s *ProductService) Create(product *models.Product) error {
	return s.repo.Create(product)
}

// Update applies a partial update to an existing product.
func (s *ProductService) Update(id uint, update ProductUpdate) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.StockQty != nil {
		product.StockQty = *update.StockQty
	}
	if update.ImageURL != nil {
		product.ImageURL = *update.ImageURL
	}
	if update.CategoryID != nil {
		product.CategoryID = update.CategoryID
	}
	if update.IsActive != nil {
		product.IsActive = *update.IsActive
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product.
func (s *ProductService) Delete(id uint) error {
	return s.repo.Delete(id)
}

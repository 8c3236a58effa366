package repositories

import (
	"errors"
	"fmt"

	"foodnova/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

// GetAll retrieves products, optionally restricted to active ones and to
// a single category.
func (r *GORMProductRepository) GetAll(activeOnly bool, categoryID *uint) ([]models.Product, error) {
	query := r.db.Order("id")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves all fields of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a product by its ID.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// AdjustStock applies a signed stock delta. Decrements are guarded at the
// database so concurrent orders cannot drive the counter negative.
func (r *GORMProductRepository) AdjustStock(id uint, delta int) error {
	return adjustStock(r.db, id, delta)
}

// SetStock replaces the stock counter with an absolute value.
func (r *GORMProductRepository) SetStock(id uint, qty int) error {
	res := r.db.Model(&models.Product{}).Where("id = ?", id).Update("stock_qty", qty)
	if res.Error != nil {
		return fmt.Errorf("failed to set stock for product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// adjustStock is shared with the order repository so order placement can
// run the same guarded update inside its own transaction.
func adjustStock(db *gorm.DB, id uint, delta int) error {
	query := db.Model(&models.Product{}).Where("id = ?", id)
	if delta < 0 {
		query = query.Where("stock_qty >= ?", -delta)
	}
	res := query.Update("stock_qty", gorm.Expr("stock_qty + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust stock for product %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to adjust stock for product %d: %w", id, err)
		}
		if count == 0 {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("product %d: %w", id, ErrInsufficientStock)
	}
	return nil
}

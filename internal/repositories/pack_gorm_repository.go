package repositories

import (
	"errors"
	"fmt"

	"foodnova/internal/models"

	"gorm.io/gorm"
)

// GORMPackRepository is a GORM implementation of PackRepository.
type GORMPackRepository struct {
	db *gorm.DB
}

// NewGORMPackRepository creates a new instance of GORMPackRepository.
func NewGORMPackRepository(db *gorm.DB) *GORMPackRepository {
	return &GORMPackRepository{db: db}
}

// GetAll retrieves packs with their variants and items preloaded.
func (r *GORMPackRepository) GetAll(activeOnly bool) ([]models.Pack, error) {
	query := r.db.Preload("Variants.Items").Order("id")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var packs []models.Pack
	if err := query.Find(&packs).Error; err != nil {
		return nil, fmt.Errorf("failed to get packs: %w", err)
	}
	return packs, nil
}

// GetByID retrieves one pack with variants and items preloaded.
func (r *GORMPackRepository) GetByID(id uint, activeOnly bool) (*models.Pack, error) {
	query := r.db.Preload("Variants.Items")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var pack models.Pack
	if err := query.First(&pack, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pack %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get pack %d: %w", id, err)
	}
	return &pack, nil
}

// Create persists a pack together with any inline variants and items in
// one transaction. Every referenced product must exist.
func (r *GORMPackRepository) Create(pack *models.Pack) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, variant := range pack.Variants {
			if err := checkProductsExist(tx, variant.Items); err != nil {
				return err
			}
		}
		if err := tx.Create(pack).Error; err != nil {
			return fmt.Errorf("failed to create pack: %w", err)
		}
		return nil
	})
}

// Update saves all fields of an existing pack (not its variants).
func (r *GORMPackRepository) Update(pack *models.Pack) error {
	res := r.db.Omit("Variants").Save(pack)
	if res.Error != nil {
		return fmt.Errorf("failed to update pack: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("pack %d: %w", pack.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a pack, cascading explicitly through its variants and
// their items inside one transaction.
func (r *GORMPackRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var variantIDs []uint
		if err := tx.Model(&models.PackVariant{}).Where("pack_id = ?", id).
			Pluck("id", &variantIDs).Error; err != nil {
			return fmt.Errorf("failed to list variants of pack %d: %w", id, err)
		}
		if len(variantIDs) > 0 {
			if err := tx.Delete(&models.PackVariantItem{}, "variant_id IN ?", variantIDs).Error; err != nil {
				return fmt.Errorf("failed to delete items of pack %d: %w", id, err)
			}
			if err := tx.Delete(&models.PackVariant{}, "pack_id = ?", id).Error; err != nil {
				return fmt.Errorf("failed to delete variants of pack %d: %w", id, err)
			}
		}
		res := tx.Delete(&models.Pack{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete pack %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("pack %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

// GetVariant retrieves one variant with its items preloaded.
func (r *GORMPackRepository) GetVariant(id uint) (*models.PackVariant, error) {
	var variant models.PackVariant
	if err := r.db.Preload("Items").First(&variant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("variant %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get variant %d: %w", id, err)
	}
	return &variant, nil
}

// AddVariant creates a variant (and its inline items) under an existing
// pack in one transaction.
func (r *GORMPackRepository) AddVariant(variant *models.PackVariant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Pack{}).Where("id = ?", variant.PackID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to look up pack %d: %w", variant.PackID, err)
		}
		if count == 0 {
			return fmt.Errorf("pack %d: %w", variant.PackID, ErrNotFound)
		}
		if err := checkProductsExist(tx, variant.Items); err != nil {
			return err
		}
		if err := tx.Create(variant).Error; err != nil {
			return fmt.Errorf("failed to create variant: %w", err)
		}
		return nil
	})
}

// UpdateVariant saves the scalar fields of an existing variant.
func (r *GORMPackRepository) UpdateVariant(variant *models.PackVariant) error {
	res := r.db.Omit("Items").Save(variant)
	if res.Error != nil {
		return fmt.Errorf("failed to update variant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("variant %d: %w", variant.ID, ErrNotFound)
	}
	return nil
}

// DeleteVariant removes a variant and its items in one transaction.
func (r *GORMPackRepository) DeleteVariant(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PackVariantItem{}, "variant_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete items of variant %d: %w", id, err)
		}
		res := tx.Delete(&models.PackVariant{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete variant %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("variant %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

// AddItem creates an item under an existing variant. The referenced
// product must exist.
func (r *GORMPackRepository) AddItem(item *models.PackVariantItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PackVariant{}).Where("id = ?", item.VariantID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to look up variant %d: %w", item.VariantID, err)
		}
		if count == 0 {
			return fmt.Errorf("variant %d: %w", item.VariantID, ErrNotFound)
		}
		if err := checkProductsExist(tx, []models.PackVariantItem{*item}); err != nil {
			return err
		}
		if err := tx.Create(item).Error; err != nil {
			return fmt.Errorf("failed to create variant item: %w", err)
		}
		return nil
	})
}

// DeleteItem removes a single variant item.
func (r *GORMPackRepository) DeleteItem(id uint) error {
	res := r.db.Delete(&models.PackVariantItem{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete variant item %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("variant item %d: %w", id, ErrNotFound)
	}
	return nil
}

// checkProductsExist verifies that every item references an existing
// product before the row is written.
func checkProductsExist(tx *gorm.DB, items []models.PackVariantItem) error {
	for _, item := range items {
		var count int64
		if err := tx.Model(&models.Product{}).Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to look up product %d: %w", item.ProductID, err)
		}
		if count == 0 {
			return fmt.Errorf("product %d: %w", item.ProductID, ErrNotFound)
		}
	}
	return nil
}

package services

import (
	"foodnova/internal/models"
	"foodnova/internal/repositories"
)

// PackVariantItemCreate is one bundle line in a create request.
type PackVariantItemCreate struct {
	ProductID uint `json:"product_id" validate:"required"`
	Qty       int  `json:"qty" validate:"gt=0"`
}

// PackVariantCreate is an inline variant in a create request.
type PackVariantCreate struct {
	Name  string                  `json:"name" validate:"required"`
	Price int64                   `json:"price" validate:"gt=0"`
	Items []PackVariantItemCreate `json:"items" validate:"dive"`
}

// PackCreate is the nested pack creation request.
type PackCreate struct {
	Name        string              `json:"name" validate:"required"`
	Description string              `json:"description"`
	IsActive    *bool               `json:"is_active"`
	Variants    []PackVariantCreate `json:"variants" validate:"dive"`
}

// PackUpdate carries a partial pack update; nil fields are untouched.
type PackUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

// PackVariantUpdate carries a partial variant update.
type PackVariantUpdate struct {
	Name  *string `json:"name"`
	Price *int64  `json:"price" validate:"omitempty,gt=0"`
}

// PackService handles admin pack management: nested creates, partial
// updates and explicit cascade deletes.
type PackService struct {
	repo repositories.PackRepository
}

// NewPackService creates a new PackService.
func NewPackService(repo repositories.PackRepository) *PackService {
	return &PackService{repo: repo}
}

// Create persists a pack with its inline variants and items atomically.
func (s *PackService) Create(req PackCreate) (*models.Pack, error) {
	pack := &models.Pack{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		pack.IsActive = *req.IsActive
	}
	for _, v := range req.Variants {
		variant := models.PackVariant{Name: v.Name, Price: v.Price}
		for _, item := range v.Items {
			variant.Items = append(variant.Items, models.PackVariantItem{
				ProductID: item.ProductID,
				Qty:       item.Qty,
			})
		}
		pack.Variants = append(pack.Variants, variant)
	}

	if err := s.repo.Create(pack); err != nil {
		return nil, err
	}
	return pack, nil
}

// Update applies a partial update to an existing pack.
func (s *PackService) Update(id uint, update PackUpdate) error {
	pack, err := s.repo.GetByID(id, false)
	if err != nil {
		return err
	}
	if update.Name != nil {
		pack.Name = *update.Name
	}
	if update.Description != nil {
		pack.Description = *update.Description
	}
	if update.IsActive != nil {
		pack.IsActive = *update.IsActive
	}
	return s.repo.Update(pack)
}

// Delete removes a pack, cascading through variants and items.
func (s *PackService) Delete(id uint) error {
	return s.repo.Delete(id)
}

// AddVariant attaches a new variant (with inline items) to a pack.
func (s *PackService) AddVariant(packID uint, req PackVariantCreate) (*models.PackVariant, error) {
	variant := &models.PackVariant{
		PackID: packID,
		Name:   req.Name,
		Price:  req.Price,
	}
	for _, item := range req.Items {
		variant.Items = append(variant.Items, models.PackVariantItem{
			ProductID: item.ProductID,
			Qty:       item.Qty,
		})
	}
	if err := s.repo.AddVariant(variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// UpdateVariant applies a partial update to an existing variant.
func (s *PackService) UpdateVariant(id uint, update PackVariantUpdate) error {
	variant, err := s.repo.GetVariant(id)
	if err != nil {
		return err
	}
	if update.Name != nil {
		variant.Name = *update.Name
	}
	if update.Price != nil {
		variant.Price = *update.Price
	}
	return s.repo.UpdateVariant(variant)
}

// DeleteVariant removes a variant and its items.
func (s *PackService) DeleteVariant(id uint) error {
	return s.repo.DeleteVariant(id)
}

// AddItem attaches a new item to a variant.
func (s *PackService) AddItem(variantID uint, req PackVariantItemCreate) (*models.PackVariantItem, error) {
	item := &models.PackVariantItem{
		VariantID: variantID,
		ProductID: req.ProductID,
		Qty:       req.Qty,
	}
	if err := s.repo.AddItem(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes a single variant item.
func (s *PackService) DeleteItem(id uint) error {
	return s.repo.DeleteItem(id)
}

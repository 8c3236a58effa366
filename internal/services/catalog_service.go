package services

import (
	"errors"
	"fmt"

	"foodnova/internal/models"
	"foodnova/internal/repositories"
)

// ProductResponse is a product enriched with its category display name.
type ProductResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Price        int64  `json:"price"`
	StockQty     int    `json:"stock_qty"`
	ImageURL     string `json:"image_url"`
	CategoryID   *uint  `json:"category_id"`
	IsActive     bool   `json:"is_active"`
	CategoryName string `json:"category_name,omitempty"`
}

// PackListResponse is the storefront pack summary ("starting at ₦X").
type PackListResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	IsActive     bool   `json:"is_active"`
	VariantCount int    `json:"variant_count"`
	MinPrice     *int64 `json:"min_price"`
}

// PackVariantItemResponse is a variant item with its product name.
type PackVariantItemResponse struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	Qty         int    `json:"qty"`
}

// PackVariantResponse is a variant with its resolved item list.
type PackVariantResponse struct {
	ID    uint                      `json:"id"`
	Name  string                    `json:"name"`
	Price int64                     `json:"price"`
	Items []PackVariantItemResponse `json:"items"`
}

// PackResponse is the fully nested pack shape.
type PackResponse struct {
	ID           uint                  `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	IsActive     bool                  `json:"is_active"`
	Variants     []PackVariantResponse `json:"variants"`
	VariantCount int                   `json:"variant_count"`
}

// CatalogService owns the public read paths over categories, products
// and packs, denormalizing joined names into the response shapes.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	packRepo     repositories.PackRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, packRepo repositories.PackRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		packRepo:     packRepo,
	}
}

// ListCategories returns all categories, unfiltered.
func (s *CatalogService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// ListProducts returns active products, optionally filtered by category,
// each enriched with its category's display name.
func (s *CatalogService) ListProducts(categoryID *uint) ([]ProductResponse, error) {
	products, err := s.productRepo.GetAll(true, categoryID)
	if err != nil {
		return nil, err
	}

	// Category names resolved once per listing, not per row.
	names, err := s.categoryNames()
	if err != nil {
		return nil, err
	}

	result := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp := ProductResponse{
			ID:         p.ID,
			Name:       p.Name,
			Price:      p.Price,
			StockQty:   p.StockQty,
			ImageURL:   p.ImageURL,
			CategoryID: p.CategoryID,
			IsActive:   p.IsActive,
		}
		if p.CategoryID != nil {
			resp.CategoryName = names[*p.CategoryID]
		}
		result = append(result, resp)
	}
	return result, nil
}

// ListPacks returns active packs with variant count and minimum variant
// price (nil when a pack has no variants yet).
func (s *CatalogService) ListPacks() ([]PackListResponse, error) {
	packs, err := s.packRepo.GetAll(true)
	if err != nil {
		return nil, err
	}

	result := make([]PackListResponse, 0, len(packs))
	for _, pack := range packs {
		resp := PackListResponse{
			ID:           pack.ID,
			Name:         pack.Name,
			Description:  pack.Description,
			IsActive:     pack.IsActive,
			VariantCount: len(pack.Variants),
		}
		for _, v := range pack.Variants {
			if resp.MinPrice == nil || v.Price < *resp.MinPrice {
				price := v.Price
				resp.MinPrice = &price
			}
		}
		result = append(result, resp)
	}
	return result, nil
}

// GetPack returns the full nested structure of one active pack. Items
// whose product was since removed are dropped from the public view.
func (s *CatalogService) GetPack(id uint) (*PackResponse, error) {
	pack, err := s.packRepo.GetByID(id, true)
	if err != nil {
		return nil, err
	}
	resp := s.buildPackResponse(pack, false)
	return &resp, nil
}

// ListPacksAdmin returns every pack with full nested expansion; items
// referencing removed products carry an "Unknown" product name.
func (s *CatalogService) ListPacksAdmin() ([]PackResponse, error) {
	packs, err := s.packRepo.GetAll(false)
	if err != nil {
		return nil, err
	}
	result := make([]PackResponse, 0, len(packs))
	for i := range packs {
		result = append(result, s.buildPackResponse(&packs[i], true))
	}
	return result, nil
}

func (s *CatalogService) buildPackResponse(pack *models.Pack, keepUnknown bool) PackResponse {
	resp := PackResponse{
		ID:           pack.ID,
		Name:         pack.Name,
		Description:  pack.Description,
		IsActive:     pack.IsActive,
		Variants:     make([]PackVariantResponse, 0, len(pack.Variants)),
		VariantCount: len(pack.Variants),
	}
	for _, variant := range pack.Variants {
		vResp := PackVariantResponse{
			ID:    variant.ID,
			Name:  variant.Name,
			Price: variant.Price,
			Items: make([]PackVariantItemResponse, 0, len(variant.Items)),
		}
		for _, item := range variant.Items {
			product, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				if !keepUnknown && errors.Is(err, ErrNotFound) {
					continue
				}
				vResp.Items = append(vResp.Items, PackVariantItemResponse{
					ID: item.ID, ProductID: item.ProductID, ProductName: "Unknown", Qty: item.Qty,
				})
				continue
			}
			vResp.Items = append(vResp.Items, PackVariantItemResponse{
				ID: item.ID, ProductID: item.ProductID, ProductName: product.Name, Qty: item.Qty,
			})
		}
		resp.Variants = append(resp.Variants, vResp)
	}
	return resp
}

func (s *CatalogService) categoryNames() (map[uint]string, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve category names: %w", err)
	}
	names := make(map[uint]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return names, nil
}

package services

import (
	"foodnova/internal/repositories"
)

// InventoryService guards the per-product stock counters. Every
// operation reports a plain boolean: a missing product is a false
// result, never an error.
type InventoryService struct {
	productRepo repositories.ProductRepository
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(productRepo repositories.ProductRepository) *InventoryService {
	return &InventoryService{productRepo: productRepo}
}

// CheckStock reports whether qty is coverable by current stock.
func (s *InventoryService) CheckStock(productID uint, qty int) bool {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return false
	}
	return product.StockQty >= qty
}

// ReduceStock decrements stock if coverable. A false return means the
// caller must treat the whole surrounding operation as failed.
func (s *InventoryService) ReduceStock(productID uint, qty int) bool {
	return s.productRepo.AdjustStock(productID, -qty) == nil
}

// RestoreStock adds qty back after a cancellation.
func (s *InventoryService) RestoreStock(productID uint, qty int) bool {
	return s.productRepo.AdjustStock(productID, qty) == nil
}

// UpdateStock sets the counter to an absolute value (admin correction).
func (s *InventoryService) UpdateStock(productID uint, qty int) bool {
	if qty < 0 {
		return false
	}
	return s.productRepo.SetStock(productID, qty) == nil
}

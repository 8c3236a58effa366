package services

import (
	"fmt"

	"foodnova/internal/models"
	"foodnova/internal/repositories"
)

// CategoryService handles admin category management.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// ListAll returns every category, no active filtering.
func (s *CategoryService) ListAll() ([]models.Category, error) {
	return s.repo.GetAll()
}

// Create adds a category. A taken name fails with ErrConflict.
func (s *CategoryService) Create(name string) (*models.Category, error) {
	if existing, _ := s.repo.GetByName(name); existing != nil {
		return nil, fmt.Errorf("category %q already exists: %w", name, ErrConflict)
	}
	category := &models.Category{Name: name}
	if err := s.repo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes a category; referencing products are detached, not
// deleted.
func (s *CategoryService) Delete(id uint) error {
	return s.repo.Delete(id)
}

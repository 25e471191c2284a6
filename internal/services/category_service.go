package services

import (
	"errors"
	"fmt"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.repo.GetAll()
}

// CreateCategory creates a new category. An existing category with the
// same name (case-sensitive exact match) yields models.ErrConflict.
func (s *CategoryService) CreateCategory(category *models.Category) error {
	if _, err := s.repo.GetByName(category.Name); err == nil {
		return fmt.Errorf("category '%s' already exists: %w", category.Name, models.ErrConflict)
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}
	return s.repo.Create(category)
}

// DeleteCategory deletes a category by its ID, cascading to its items.
func (s *CategoryService) DeleteCategory(id string) error {
	return s.repo.Delete(id)
}

package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	categories map[string]models.Category
	mu         sync.RWMutex

	// Optional companion item store, so Delete can cascade like the
	// GORM implementation does.
	Items *MockItemRepository
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]models.Category),
	}
}

// GetAll returns all categories.
func (r *MockCategoryRepository) GetAll() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categoryList := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		categoryList = append(categoryList, c)
	}
	return categoryList, nil
}

// GetByID returns a category by its ID.
func (r *MockCategoryRepository) GetByID(id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("category with ID %s: %w", id, models.ErrNotFound)
	}
	return &category, nil
}

// GetByName returns a category by its exact name.
func (r *MockCategoryRepository) GetByName(name string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category with name %s: %w", name, models.ErrNotFound)
}

// Create adds a new category.
func (r *MockCategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	r.categories[category.ID] = *category
	return nil
}

// Delete removes a category by its ID, cascading to the companion item
// store when one is attached.
func (r *MockCategoryRepository) Delete(id string) error {
	r.mu.Lock()
	_, ok := r.categories[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("category with ID %s: %w", id, models.ErrNotFound)
	}
	delete(r.categories, id)
	r.mu.Unlock()

	if r.Items != nil {
		r.Items.DeleteByCategory(id)
	}
	return nil
}

package repositories

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
)

// MockItemRepository is an in-memory implementation of ItemRepository.
type MockItemRepository struct {
	items map[string]models.Item
	mu    sync.RWMutex
}

// NewMockItemRepository creates a new instance of MockItemRepository.
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		items: make(map[string]models.Item),
	}
}

// Search returns items matching the category and name filters.
func (r *MockItemRepository) Search(categoryID, search string) ([]models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.Item, 0, len(r.items))
	for _, item := range r.items {
		if categoryID != "" && item.CategoryID != categoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(search)) {
			continue
		}
		itemList = append(itemList, item)
	}
	return itemList, nil
}

// GetByID returns an item by its ID.
func (r *MockItemRepository) GetByID(id string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, fmt.Errorf("item with ID %s: %w", id, models.ErrNotFound)
	}
	return &item, nil
}

// Create adds a new item.
func (r *MockItemRepository) Create(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = *item
	return nil
}

// Update modifies an existing item.
func (r *MockItemRepository) Update(item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("item with ID %s: %w", item.ID, models.ErrNotFound)
	}
	r.items[item.ID] = *item
	return nil
}

// Delete removes an item by its ID.
func (r *MockItemRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.items[id]
	if !ok {
		return fmt.Errorf("item with ID %s: %w", id, models.ErrNotFound)
	}
	delete(r.items, id)
	return nil
}

// DeleteByCategory removes every item in the given category. Used by the
// category mock to mirror the cascade the GORM repository applies.
func (r *MockItemRepository) DeleteByCategory(categoryID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.CategoryID == categoryID {
			delete(r.items, id)
		}
	}
}

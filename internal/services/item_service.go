package services

import (
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/repositories"
)

// ItemService handles business logic related to catalog items.
type ItemService struct {
	itemRepo     repositories.ItemRepository
	categoryRepo repositories.CategoryRepository
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo repositories.ItemRepository, categoryRepo repositories.CategoryRepository) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
	}
}

// SearchItems retrieves items, optionally filtered by exact category ID
// and case-insensitive name substring. Both filters combine with AND
// semantics; empty filters match everything.
func (s *ItemService) SearchItems(categoryID, search string) ([]models.Item, error) {
	return s.itemRepo.Search(categoryID, search)
}

// CreateItem creates a new item after checking the category exists.
func (s *ItemService) CreateItem(item *models.Item) error {
	if _, err := s.categoryRepo.GetByID(item.CategoryID); err != nil {
		return err
	}
	return s.itemRepo.Create(item)
}

// UpdateItem applies a partial update: only supplied, non-empty fields
// are written. A new category ID must reference an existing category.
func (s *ItemService) UpdateItem(id, name, categoryID string) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if name != "" {
		item.Name = name
	}
	if categoryID != "" {
		if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
			return nil, err
		}
		item.CategoryID = categoryID
	}

	if err := s.itemRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem deletes an item by its ID.
func (s *ItemService) DeleteItem(id string) error {
	return s.itemRepo.Delete(id)
}

package repositories

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
)

// MockListRepository is an in-memory implementation of ListRepository.
// The item-name join in GetItems reads from the companion item store.
type MockListRepository struct {
	lists     map[string]models.List
	listItems map[string]models.ListItem
	mu        sync.RWMutex

	Items *MockItemRepository
}

// NewMockListRepository creates a new instance of MockListRepository.
func NewMockListRepository(items *MockItemRepository) *MockListRepository {
	return &MockListRepository{
		lists:     make(map[string]models.List),
		listItems: make(map[string]models.ListItem),
		Items:     items,
	}
}

// GetByUser returns all lists owned by the given user.
func (r *MockListRepository) GetByUser(userID string) ([]models.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listList := make([]models.List, 0)
	for _, l := range r.lists {
		if l.UserID == userID {
			listList = append(listList, l)
		}
	}
	return listList, nil
}

// GetByID returns a list by its ID.
func (r *MockListRepository) GetByID(id string) (*models.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, fmt.Errorf("list with ID %s: %w", id, models.ErrNotFound)
	}
	return &list, nil
}

// Create adds a new list.
func (r *MockListRepository) Create(list *models.List) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	r.lists[list.ID] = *list
	return nil
}

// Delete removes a list and its list items.
func (r *MockListRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.lists[id]
	if !ok {
		return fmt.Errorf("list with ID %s: %w", id, models.ErrNotFound)
	}
	delete(r.lists, id)
	for liID, li := range r.listItems {
		if li.ListID == id {
			delete(r.listItems, liID)
		}
	}
	return nil
}

// AddItem adds a new list item.
func (r *MockListRepository) AddItem(listItem *models.ListItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if listItem.ID == "" {
		listItem.ID = uuid.New().String()
	}
	r.listItems[listItem.ID] = *listItem
	return nil
}

// GetListItem returns a list item by its ID.
func (r *MockListRepository) GetListItem(id string) (*models.ListItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listItem, ok := r.listItems[id]
	if !ok {
		return nil, fmt.Errorf("list item with ID %s: %w", id, models.ErrNotFound)
	}
	return &listItem, nil
}

// SaveListItem persists an updated list item.
func (r *MockListRepository) SaveListItem(listItem *models.ListItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.listItems[listItem.ID]
	if !ok {
		return fmt.Errorf("list item with ID %s: %w", listItem.ID, models.ErrNotFound)
	}
	r.listItems[listItem.ID] = *listItem
	return nil
}

// GetItems returns the list's items joined with the item name.
func (r *MockListRepository) GetItems(listID string, checked *bool, search string) ([]models.ListItemRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]models.ListItemRow, 0)
	for _, li := range r.listItems {
		if li.ListID != listID {
			continue
		}
		if checked != nil && li.Checked != *checked {
			continue
		}

		name := ""
		if r.Items != nil {
			if item, err := r.Items.GetByID(li.ItemID); err == nil {
				name = item.Name
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(search)) {
			continue
		}

		rows = append(rows, models.ListItemRow{
			ListItemID: li.ID,
			ItemID:     li.ItemID,
			Name:       name,
			Checked:    li.Checked,
		})
	}
	return rows, nil
}

package repositories

import "github.com/hopeeiscoding/ShopEasy-web-app/internal/models"

// ListRepository defines the interface for shopping list and list item
// data access. Ownership checks live in the service layer; this layer
// only moves rows.
type ListRepository interface {
	GetByUser(userID string) ([]models.List, error)
	GetByID(id string) (*models.List, error)
	Create(list *models.List) error
	// Delete removes a list and all of its list items.
	Delete(id string) error

	AddItem(listItem *models.ListItem) error
	GetListItem(id string) (*models.ListItem, error)
	SaveListItem(listItem *models.ListItem) error
	// GetItems returns the list's items joined with the item name. A
	// nil checked filter matches both states; search is a
	// case-insensitive substring on the item name.
	GetItems(listID string, checked *bool, search string) ([]models.ListItemRow, error)
}

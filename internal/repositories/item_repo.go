package repositories

import "github.com/hopeeiscoding/ShopEasy-web-app/internal/models"

// ItemRepository defines the interface for catalog item data access.
type ItemRepository interface {
	// Search returns items matching both filters. An empty categoryID
	// matches every category; an empty search matches every name. The
	// name match is a case-insensitive substring.
	Search(categoryID, search string) ([]models.Item, error)
	GetByID(id string) (*models.Item, error)
	Create(item *models.Item) error
	Update(item *models.Item) error
	Delete(id string) error
}

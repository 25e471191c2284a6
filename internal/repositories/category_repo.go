package repositories

import "github.com/hopeeiscoding/ShopEasy-web-app/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	GetByName(name string) (*models.Category, error)
	Create(category *models.Category) error
	// Delete removes a category and all items belonging to it.
	Delete(id string) error
}

package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
)

// GORMListRepository is a GORM implementation of ListRepository.
type GORMListRepository struct {
	db *gorm.DB
}

// NewGORMListRepository creates a new instance of GORMListRepository.
func NewGORMListRepository(db *gorm.DB) *GORMListRepository {
	return &GORMListRepository{
		db: db,
	}
}

// GetByUser retrieves all lists owned by the given user.
func (r *GORMListRepository) GetByUser(userID string) ([]models.List, error) {
	var lists []models.List
	if err := r.db.Find(&lists, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get lists for user %s: %w", userID, err)
	}
	return lists, nil
}

// GetByID retrieves a single list by its ID from the database.
func (r *GORMListRepository) GetByID(id string) (*models.List, error) {
	var list models.List
	if err := r.db.First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("list with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get list by ID %s: %w", id, err)
	}
	return &list, nil
}

// Create creates a new list in the database.
func (r *GORMListRepository) Create(list *models.List) error {
	if list.ID == "" {
		list.ID = uuid.New().String()
	}
	if err := r.db.Create(list).Error; err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}
	return nil
}

// Delete deletes a list and its list items in one transaction. The
// cascade is applied here rather than relying on driver FK enforcement.
func (r *GORMListRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ListItem{}, "list_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete items of list %s: %w", id, err)
		}
		res := tx.Delete(&models.List{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete list: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("list with ID %s: %w", id, models.ErrNotFound)
		}
		return nil
	})
}

// AddItem creates a new list item in the database.
func (r *GORMListRepository) AddItem(listItem *models.ListItem) error {
	if listItem.ID == "" {
		listItem.ID = uuid.New().String()
	}
	if err := r.db.Create(listItem).Error; err != nil {
		return fmt.Errorf("failed to create list item: %w", err)
	}
	return nil
}

// GetListItem retrieves a single list item by its ID from the database.
func (r *GORMListRepository) GetListItem(id string) (*models.ListItem, error) {
	var listItem models.ListItem
	if err := r.db.First(&listItem, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("list item with ID %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get list item by ID %s: %w", id, err)
	}
	return &listItem, nil
}

// SaveListItem persists an updated list item.
func (r *GORMListRepository) SaveListItem(listItem *models.ListItem) error {
	res := r.db.Model(&models.ListItem{}).
		Where("id = ?", listItem.ID).
		Update("checked", listItem.Checked)
	if res.Error != nil {
		return fmt.Errorf("failed to save list item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("list item with ID %s: %w", listItem.ID, models.ErrNotFound)
	}
	return nil
}

// GetItems retrieves the list items of a list joined with the item
// name, optionally filtered by checked state and item name substring.
func (r *GORMListRepository) GetItems(listID string, checked *bool, search string) ([]models.ListItemRow, error) {
	query := r.db.Table("list_items").
		Select("list_items.id AS list_item_id, items.id AS item_id, items.name AS name, list_items.checked AS checked").
		Joins("JOIN items ON items.id = list_items.item_id").
		Where("list_items.list_id = ?", listID)

	if checked != nil {
		query = query.Where("list_items.checked = ?", *checked)
	}
	if search != "" {
		query = query.Where("LOWER(items.name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var rows []models.ListItemRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get items of list %s: %w", listID, err)
	}
	return rows, nil
}

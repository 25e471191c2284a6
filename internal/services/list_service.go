package services

import (
	"fmt"
	"log"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/repositories"
	"github.com/hopeeiscoding/ShopEasy-web-app/pkg/rabbitmq"
)

// ListService handles business logic for shopping lists and their
// items. Every list-scoped operation verifies the caller owns the list
// before touching it.
type ListService struct {
	listRepo repositories.ListRepository
	itemRepo repositories.ItemRepository
	mqClient *rabbitmq.Client
}

// NewListService creates a new ListService. The RabbitMQ client may be
// nil, in which case event publication is skipped.
func NewListService(listRepo repositories.ListRepository, itemRepo repositories.ItemRepository, mqClient *rabbitmq.Client) *ListService {
	return &ListService{
		listRepo: listRepo,
		itemRepo: itemRepo,
		mqClient: mqClient,
	}
}

// GetUserLists retrieves the lists owned by the given user.
func (s *ListService) GetUserLists(userID string) ([]models.List, error) {
	return s.listRepo.GetByUser(userID)
}

// CreateList creates a new list owned by the given user.
func (s *ListService) CreateList(userID, name string) (*models.List, error) {
	list := &models.List{
		Name:   name,
		UserID: userID,
	}
	if err := s.listRepo.Create(list); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	s.publish(rabbitmq.EventListCreated, map[string]interface{}{
		"list_id": list.ID,
		"user_id": list.UserID,
		"name":    list.Name,
	})
	return list, nil
}

// DeleteList deletes a list owned by the given user, cascading to its
// list items.
func (s *ListService) DeleteList(userID, listID string) error {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		return err
	}
	if list.UserID != userID {
		return fmt.Errorf("list %s is not owned by user %s: %w", listID, userID, models.ErrForbidden)
	}

	if err := s.listRepo.Delete(listID); err != nil {
		return err
	}

	s.publish(rabbitmq.EventListDeleted, map[string]interface{}{
		"list_id": listID,
		"user_id": userID,
	})
	return nil
}

// AddItemToList creates a list item linking the list with a catalog
// item, checked=false. The list and the item must both exist, and the
// list must be owned by the caller.
func (s *ListService) AddItemToList(userID, listID, itemID string) (*models.ListItem, error) {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		return nil, err
	}
	if _, err := s.itemRepo.GetByID(itemID); err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, fmt.Errorf("list %s is not owned by user %s: %w", listID, userID, models.ErrForbidden)
	}

	listItem := &models.ListItem{
		ListID:  listID,
		ItemID:  itemID,
		Checked: false,
	}
	if err := s.listRepo.AddItem(listItem); err != nil {
		return nil, fmt.Errorf("failed to add item to list: %w", err)
	}

	s.publish(rabbitmq.EventListItemAdded, map[string]interface{}{
		"list_item_id": listItem.ID,
		"list_id":      listID,
		"item_id":      itemID,
		"user_id":      userID,
	})
	return listItem, nil
}

// ToggleListItem flips the checked flag of a list item owned (via its
// list) by the caller and returns the updated list item. Toggling is
// the only way the flag changes.
func (s *ListService) ToggleListItem(userID, listItemID string) (*models.ListItem, error) {
	listItem, err := s.listRepo.GetListItem(listItemID)
	if err != nil {
		return nil, err
	}
	list, err := s.listRepo.GetByID(listItem.ListID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, fmt.Errorf("list %s is not owned by user %s: %w", list.ID, userID, models.ErrForbidden)
	}

	listItem.Checked = !listItem.Checked
	if err := s.listRepo.SaveListItem(listItem); err != nil {
		return nil, err
	}

	s.publish(rabbitmq.EventListItemToggled, map[string]interface{}{
		"list_item_id": listItem.ID,
		"list_id":      listItem.ListID,
		"user_id":      userID,
		"checked":      listItem.Checked,
	})
	return listItem, nil
}

// GetItemsInList returns the list's items joined with item names,
// optionally filtered by checked state and name substring.
func (s *ListService) GetItemsInList(userID, listID string, checked *bool, search string) ([]models.ListItemRow, error) {
	list, err := s.listRepo.GetByID(listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, fmt.Errorf("list %s is not owned by user %s: %w", listID, userID, models.ErrForbidden)
	}
	return s.listRepo.GetItems(listID, checked, search)
}

// publish sends a list event when a broker is configured. Publication
// is best effort and never fails the calling operation.
func (s *ListService) publish(eventType string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	if err := s.mqClient.PublishListEvent(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}

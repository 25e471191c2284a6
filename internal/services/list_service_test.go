package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/repositories"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/services"
)

type listFixture struct {
	listService *services.ListService
	itemRepo    *repositories.MockItemRepository
	apple       *models.Item
	chicken     *models.Item
}

func newListFixture(t *testing.T) *listFixture {
	t.Helper()
	itemRepo := repositories.NewMockItemRepository()
	listRepo := repositories.NewMockListRepository(itemRepo)

	apple := &models.Item{Name: "Apple", CategoryID: "cat-1"}
	chicken := &models.Item{Name: "Chicken", CategoryID: "cat-2"}
	assert.NoError(t, itemRepo.Create(apple))
	assert.NoError(t, itemRepo.Create(chicken))

	// nil RabbitMQ client: event publication is skipped.
	return &listFixture{
		listService: services.NewListService(listRepo, itemRepo, nil),
		itemRepo:    itemRepo,
		apple:       apple,
		chicken:     chicken,
	}
}

func TestListService_ListsAreScopedToOwner(t *testing.T) {
	f := newListFixture(t)

	groceries, err := f.listService.CreateList("alice", "Groceries")
	assert.NoError(t, err)
	assert.Equal(t, "alice", groceries.UserID)
	_, err = f.listService.CreateList("bob", "Hardware")
	assert.NoError(t, err)

	aliceLists, err := f.listService.GetUserLists("alice")
	assert.NoError(t, err)
	assert.Len(t, aliceLists, 1)
	assert.Equal(t, "Groceries", aliceLists[0].Name)
}

func TestListService_AddItemToList(t *testing.T) {
	f := newListFixture(t)

	groceries, err := f.listService.CreateList("alice", "Groceries")
	assert.NoError(t, err)

	listItem, err := f.listService.AddItemToList("alice", groceries.ID, f.apple.ID)
	assert.NoError(t, err)
	assert.False(t, listItem.Checked)
	assert.Equal(t, groceries.ID, listItem.ListID)
	assert.Equal(t, f.apple.ID, listItem.ItemID)

	// Unknown list and unknown item are both not-found.
	_, err = f.listService.AddItemToList("alice", "missing-list", f.apple.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = f.listService.AddItemToList("alice", groceries.ID, "missing-item")
	assert.ErrorIs(t, err, models.ErrNotFound)

	// A different user is forbidden.
	_, err = f.listService.AddItemToList("bob", groceries.ID, f.apple.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)
}

func TestListService_ToggleIsItsOwnInverse(t *testing.T) {
	f := newListFixture(t)

	groceries, err := f.listService.CreateList("alice", "Groceries")
	assert.NoError(t, err)
	listItem, err := f.listService.AddItemToList("alice", groceries.ID, f.apple.ID)
	assert.NoError(t, err)

	toggled, err := f.listService.ToggleListItem("alice", listItem.ID)
	assert.NoError(t, err)
	assert.True(t, toggled.Checked)

	toggled, err = f.listService.ToggleListItem("alice", listItem.ID)
	assert.NoError(t, err)
	assert.False(t, toggled.Checked)

	// Not the owner.
	_, err = f.listService.ToggleListItem("bob", listItem.ID)
	assert.ErrorIs(t, err, models.ErrForbidden)

	// Unknown list item.
	_, err = f.listService.ToggleListItem("alice", "missing-list-item")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListService_GetItemsInList(t *testing.T) {
	f := newListFixture(t)

	groceries, err := f.listService.CreateList("alice", "Groceries")
	assert.NoError(t, err)
	appleLI, err := f.listService.AddItemToList("alice", groceries.ID, f.apple.ID)
	assert.NoError(t, err)
	_, err = f.listService.AddItemToList("alice", groceries.ID, f.chicken.ID)
	assert.NoError(t, err)

	_, err = f.listService.ToggleListItem("alice", appleLI.ID)
	assert.NoError(t, err)

	// No filters: both rows, joined with the item names.
	rows, err := f.listService.GetItemsInList("alice", groceries.ID, nil, "")
	assert.NoError(t, err)
	assert.Len(t, rows, 2)

	// checked=true returns exactly the toggled apple.
	checked := true
	rows, err = f.listService.GetItemsInList("alice", groceries.ID, &checked, "")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Apple", rows[0].Name)
	assert.True(t, rows[0].Checked)

	// Search on the joined item name, case-insensitive, AND with checked.
	unchecked := false
	rows, err = f.listService.GetItemsInList("alice", groceries.ID, &unchecked, "CHICK")
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Chicken", rows[0].Name)

	rows, err = f.listService.GetItemsInList("alice", groceries.ID, &checked, "chick")
	assert.NoError(t, err)
	assert.Len(t, rows, 0)

	// Ownership and existence checks.
	_, err = f.listService.GetItemsInList("bob", groceries.ID, nil, "")
	assert.ErrorIs(t, err, models.ErrForbidden)
	_, err = f.listService.GetItemsInList("alice", "missing-list", nil, "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListService_DeleteListCascades(t *testing.T) {
	f := newListFixture(t)

	groceries, err := f.listService.CreateList("alice", "Groceries")
	assert.NoError(t, err)
	listItem, err := f.listService.AddItemToList("alice", groceries.ID, f.apple.ID)
	assert.NoError(t, err)

	// Only the owner may delete.
	assert.ErrorIs(t, f.listService.DeleteList("bob", groceries.ID), models.ErrForbidden)

	assert.NoError(t, f.listService.DeleteList("alice", groceries.ID))

	lists, err := f.listService.GetUserLists("alice")
	assert.NoError(t, err)
	assert.Len(t, lists, 0)

	// The list item went with the list.
	_, err = f.listService.ToggleListItem("alice", listItem.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

package handlers

import (
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/middleware"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/services"
)

// ListHandler handles HTTP requests for shopping lists and their
// items. All of its routes require an authenticated session.
type ListHandler struct {
	service  *services.ListService
	validate *validator.Validate
}

// NewListHandler creates a new ListHandler.
func NewListHandler(service *services.ListService) *ListHandler {
	return &ListHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the list routes; the router passed in must
// already run AuthRequired.
func (h *ListHandler) RegisterRoutes(router fiber.Router) {
	listRoutes := router.Group("/lists")
	listRoutes.Get("/", h.HandleGetLists)
	listRoutes.Post("/", h.HandleCreateList)
	listRoutes.Delete("/:id", h.HandleDeleteList)
	listRoutes.Get("/:id/items", h.HandleGetItemsInList)

	listItemRoutes := router.Group("/list-items")
	listItemRoutes.Post("/", h.HandleAddItemToList)
	listItemRoutes.Patch("/:id/toggle", h.HandleToggleListItem)
}

// HandleGetLists retrieves the current user's lists.
func (h *ListHandler) HandleGetLists(c *fiber.Ctx) error {
	lists, err := h.service.GetUserLists(middleware.CurrentUserID(c))
	if err != nil {
		log.Printf("Error getting lists: %v", err)
		return respondError(c, err)
	}
	return c.JSON(lists)
}

// CreateListRequest represents the request body for creating a list.
type CreateListRequest struct {
	Name string `json:"name" validate:"required,max=150"`
}

// HandleCreateList creates a new list owned by the current user.
func (h *ListHandler) HandleCreateList(c *fiber.Ctx) error {
	var req CreateListRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	list, err := h.service.CreateList(middleware.CurrentUserID(c), req.Name)
	if err != nil {
		log.Printf("Error creating list: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

// HandleDeleteList deletes one of the current user's lists together
// with its list items.
func (h *ListHandler) HandleDeleteList(c *fiber.Ctx) error {
	listID := c.Params("id")
	if err := h.service.DeleteList(middleware.CurrentUserID(c), listID); err != nil {
		log.Printf("Error deleting list %s: %v", listID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "List deleted",
	})
}

// AddListItemRequest represents the request body for adding an item to
// a list.
type AddListItemRequest struct {
	ListID string `json:"list_id" validate:"required"`
	ItemID string `json:"item_id" validate:"required"`
}

// HandleAddItemToList adds a catalog item to one of the current user's
// lists, unchecked.
func (h *ListHandler) HandleAddItemToList(c *fiber.Ctx) error {
	var req AddListItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	listItem, err := h.service.AddItemToList(middleware.CurrentUserID(c), req.ListID, req.ItemID)
	if err != nil {
		log.Printf("Error adding item %s to list %s: %v", req.ItemID, req.ListID, err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(listItem)
}

// HandleToggleListItem flips a list item's checked flag and returns
// the new state.
func (h *ListHandler) HandleToggleListItem(c *fiber.Ctx) error {
	listItemID := c.Params("id")
	listItem, err := h.service.ToggleListItem(middleware.CurrentUserID(c), listItemID)
	if err != nil {
		log.Printf("Error toggling list item %s: %v", listItemID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"id":      listItem.ID,
		"checked": listItem.Checked,
	})
}

// HandleGetItemsInList returns the items of one of the current user's
// lists joined with item names, optionally filtered:
//
//	/api/lists/:id/items?checked=true&search=chick
func (h *ListHandler) HandleGetItemsInList(c *fiber.Ctx) error {
	listID := c.Params("id")

	var checked *bool
	if checkedStr := c.Query("checked"); checkedStr != "" {
		value := strings.EqualFold(checkedStr, "true")
		checked = &value
	}

	rows, err := h.service.GetItemsInList(middleware.CurrentUserID(c), listID, checked, c.Query("search"))
	if err != nil {
		log.Printf("Error getting items of list %s: %v", listID, err)
		return respondError(c, err)
	}
	return c.JSON(rows)
}

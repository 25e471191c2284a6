package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/services"
)

// ItemHandler handles HTTP requests for catalog items.
type ItemHandler struct {
	service  *services.ItemService
	validate *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the item routes with the Fiber app.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Post("/", h.HandleCreateItem)
	itemRoutes.Patch("/:id", h.HandleUpdateItem)
	itemRoutes.Delete("/:id", h.HandleDeleteItem)
}

// HandleGetItems retrieves items, optionally filtered by category and
// by a case-insensitive substring of the name:
//
//	/api/items?category_id=...&search=chick
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.SearchItems(c.Query("category_id"), c.Query("search"))
	if err != nil {
		log.Printf("Error searching items: %v", err)
		return respondError(c, err)
	}
	return c.JSON(items)
}

// CreateItemRequest represents the request body for creating an item.
type CreateItemRequest struct {
	Name       string `json:"name" validate:"required,max=150"`
	CategoryID string `json:"category_id" validate:"required"`
}

// HandleCreateItem creates a new item in an existing category.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	item := &models.Item{
		Name:       req.Name,
		CategoryID: req.CategoryID,
	}
	if err := h.service.CreateItem(item); err != nil {
		log.Printf("Error creating item: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItemRequest represents the request body for a partial item
// update. Absent or empty fields are left unchanged.
type UpdateItemRequest struct {
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// HandleUpdateItem applies a partial update to an item.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	item, err := h.service.UpdateItem(c.Params("id"), req.Name, req.CategoryID)
	if err != nil {
		log.Printf("Error updating item %s: %v", c.Params("id"), err)
		return respondError(c, err)
	}
	return c.JSON(item)
}

// HandleDeleteItem deletes an item by its ID.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if err := h.service.DeleteItem(itemID); err != nil {
		log.Printf("Error deleting item %s: %v", itemID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Item deleted",
	})
}

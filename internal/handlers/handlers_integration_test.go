package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/handlers"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/middleware"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/repositories"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/services"
)

const sessionCookieName = "shopeasy_session"

// setupApp builds a Fiber app over a fresh in-memory SQLite database
// with all handlers, services and the session middleware wired the way
// main does it.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	// A named shared-cache DSN keeps one database across GORM's pooled
	// connections while isolating tests from each other.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Category{}, &models.Item{}, &models.List{}, &models.ListItem{})
	if err != nil {
		t.Fatalf("failed to auto-migrate database: %v", err)
	}

	userRepo := repositories.NewGORMUserRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	itemRepo := repositories.NewGORMItemRepository(db)
	listRepo := repositories.NewGORMListRepository(db)

	authService := services.NewAuthService(userRepo, "test_jwt_secret")
	categoryService := services.NewCategoryService(categoryRepo)
	itemService := services.NewItemService(itemRepo, categoryRepo)
	listService := services.NewListService(listRepo, itemRepo, nil) // nil RabbitMQ client

	sessions := session.New(session.Config{
		KeyLookup:      "cookie:" + sessionCookieName,
		CookieHTTPOnly: true,
	})

	authHandler := handlers.NewAuthHandler(authService, sessions)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	itemHandler := handlers.NewItemHandler(itemService)
	listHandler := handlers.NewListHandler(listService)

	app := fiber.New()
	api := app.Group("/api")

	authHandler.RegisterRoutes(api)
	categoryHandler.RegisterRoutes(api)
	itemHandler.RegisterRoutes(api)

	protected := api.Group("", middleware.AuthRequired(sessions, authService))
	authHandler.RegisterProtectedRoutes(protected)
	listHandler.RegisterRoutes(protected)

	return app
}

// doRequest sends a JSON request through app.Test, optionally with a
// session cookie, and returns the response.
func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, cookie string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	resp.Body.Close()
}

// register creates an account and returns the session cookie from the
// Set-Cookie header.
func register(t *testing.T, app *fiber.App, username, email, password string) string {
	t.Helper()

	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("no session cookie in register response")
	return ""
}

func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	app := setupApp(t)

	userToRegister := map[string]string{
		"username": "testuser",
		"email":    "test@example.com",
		"password": "password123",
	}
	resp := doRequest(t, app, http.MethodPost, "/api/auth/register", userToRegister, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var registered models.PublicUser
	decodeBody(t, resp, &registered)
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, "testuser", registered.Username)
	assert.Equal(t, "test@example.com", registered.Email)

	// Duplicate registration (same username and email)
	resp = doRequest(t, app, http.MethodPost, "/api/auth/register", userToRegister, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Missing fields
	resp = doRequest(t, app, http.MethodPost, "/api/auth/register", map[string]string{"username": "x"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Login with the right password
	resp = doRequest(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loggedIn models.PublicUser
	decodeBody(t, resp, &loggedIn)
	assert.Equal(t, registered.ID, loggedIn.ID)

	// Wrong password
	resp = doRequest(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "test@example.com",
		"password": "wrongpassword",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestSessionGatedRoutes(t *testing.T) {
	app := setupApp(t)

	// Unauthenticated access fails before any business logic.
	resp := doRequest(t, app, http.MethodGet, "/api/lists", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	cookie := register(t, app, "sessionuser", "session@example.com", "password123")

	// The register response cookie authenticates /me.
	resp = doRequest(t, app, http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var me models.PublicUser
	decodeBody(t, resp, &me)
	assert.Equal(t, "sessionuser", me.Username)

	// Logout clears the session; the old cookie stops working.
	resp = doRequest(t, app, http.MethodPost, "/api/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestBearerTokenAuth(t *testing.T) {
	app := setupApp(t)

	register(t, app, "tokenuser", "token@example.com", "password123")

	resp := doRequest(t, app, http.MethodPost, "/api/auth/token", map[string]string{
		"email":    "token@example.com",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var tokenResp map[string]string
	decodeBody(t, resp, &tokenResp)
	assert.NotEmpty(t, tokenResp["token"])

	// A Bearer token works on session-gated routes without a cookie.
	req := httptest.NewRequest(http.MethodGet, "/api/lists", nil)
	req.Header.Set("Authorization", "Bearer "+tokenResp["token"])
	bearerResp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, bearerResp.StatusCode)
	bearerResp.Body.Close()
}

func TestCategoryEndpoints(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "Produce"}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var produce models.Category
	decodeBody(t, resp, &produce)
	assert.NotEmpty(t, produce.ID)

	// Duplicate name is a conflict and persists nothing.
	resp = doRequest(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "Produce"}, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/categories", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var categories []models.Category
	decodeBody(t, resp, &categories)
	assert.Len(t, categories, 1)

	// Empty name is a validation error.
	resp = doRequest(t, app, http.MethodPost, "/api/categories", map[string]string{"name": ""}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Delete, then the id is gone.
	resp = doRequest(t, app, http.MethodDelete, "/api/categories/"+produce.ID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, "/api/categories/"+produce.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestItemEndpoints(t *testing.T) {
	app := setupApp(t)

	resp := doRequest(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "Produce"}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var produce models.Category
	decodeBody(t, resp, &produce)
	resp = doRequest(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "Meat"}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var meat models.Category
	decodeBody(t, resp, &meat)

	// Creating in a nonexistent category is a 404.
	resp = doRequest(t, app, http.MethodPost, "/api/items", map[string]string{
		"name":        "Apple",
		"category_id": "missing-category",
	}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPost, "/api/items", map[string]string{
		"name":        "Apple",
		"category_id": produce.ID,
	}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var apple models.Item
	decodeBody(t, resp, &apple)

	resp = doRequest(t, app, http.MethodPost, "/api/items", map[string]string{
		"name":        "Chicken",
		"category_id": meat.ID,
	}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// Filter by category.
	resp = doRequest(t, app, http.MethodGet, "/api/items?category_id="+produce.ID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var items []models.Item
	decodeBody(t, resp, &items)
	assert.Len(t, items, 1)
	assert.Equal(t, "Apple", items[0].Name)

	// Case-insensitive substring search, combined with category.
	resp = doRequest(t, app, http.MethodGet, "/api/items?search=CHICK", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &items)
	assert.Len(t, items, 1)
	assert.Equal(t, "Chicken", items[0].Name)

	resp = doRequest(t, app, http.MethodGet, "/api/items?category_id="+produce.ID+"&search=chick", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &items)
	assert.Len(t, items, 0)

	// Partial update: rename only.
	resp = doRequest(t, app, http.MethodPatch, "/api/items/"+apple.ID, map[string]string{"name": "Green Apple"}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Item
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Green Apple", updated.Name)
	assert.Equal(t, produce.ID, updated.CategoryID)

	resp = doRequest(t, app, http.MethodPatch, "/api/items/missing-item", map[string]string{"name": "X"}, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, "/api/items/"+apple.ID, nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, "/api/items/"+apple.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// TestShoppingFlow walks the whole happy path: register, build the
// catalog, create a list, add an item, toggle it and read it back
// through the checked filter.
func TestShoppingFlow(t *testing.T) {
	app := setupApp(t)
	cookie := register(t, app, "alice", "alice@example.com", "password123")

	resp := doRequest(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "Produce"}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var produce models.Category
	decodeBody(t, resp, &produce)

	resp = doRequest(t, app, http.MethodPost, "/api/items", map[string]string{
		"name":        "Apple",
		"category_id": produce.ID,
	}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var apple models.Item
	decodeBody(t, resp, &apple)

	resp = doRequest(t, app, http.MethodPost, "/api/lists", map[string]string{"name": "Groceries"}, cookie)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var groceries models.List
	decodeBody(t, resp, &groceries)
	assert.Equal(t, "Groceries", groceries.Name)

	resp = doRequest(t, app, http.MethodGet, "/api/lists", nil, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var lists []models.List
	decodeBody(t, resp, &lists)
	assert.Len(t, lists, 1)

	resp = doRequest(t, app, http.MethodPost, "/api/list-items", map[string]string{
		"list_id": groceries.ID,
		"item_id": apple.ID,
	}, cookie)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var listItem models.ListItem
	decodeBody(t, resp, &listItem)
	assert.False(t, listItem.Checked)

	resp = doRequest(t, app, http.MethodPatch, "/api/list-items/"+listItem.ID+"/toggle", nil, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var toggleResp struct {
		ID      string `json:"id"`
		Checked bool   `json:"checked"`
	}
	decodeBody(t, resp, &toggleResp)
	assert.True(t, toggleResp.Checked)

	resp = doRequest(t, app, http.MethodGet, "/api/lists/"+groceries.ID+"/items?checked=true", nil, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var rows []models.ListItemRow
	decodeBody(t, resp, &rows)
	assert.Len(t, rows, 1)
	assert.Equal(t, "Apple", rows[0].Name)
	assert.True(t, rows[0].Checked)

	// Toggling again restores the original state.
	resp = doRequest(t, app, http.MethodPatch, "/api/list-items/"+listItem.ID+"/toggle", nil, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &toggleResp)
	assert.False(t, toggleResp.Checked)

	resp = doRequest(t, app, http.MethodGet, "/api/lists/"+groceries.ID+"/items?checked=true", nil, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &rows)
	assert.Len(t, rows, 0)

	// Deleting the list removes its items with it.
	resp = doRequest(t, app, http.MethodDelete, "/api/lists/"+groceries.ID, nil, cookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPatch, "/api/list-items/"+listItem.ID+"/toggle", nil, cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// TestListOwnership checks that another authenticated user can never
// read or mutate someone else's list.
func TestListOwnership(t *testing.T) {
	app := setupApp(t)
	aliceCookie := register(t, app, "alice", "alice@example.com", "password123")
	bobCookie := register(t, app, "bob", "bob@example.com", "password123")

	resp := doRequest(t, app, http.MethodPost, "/api/categories", map[string]string{"name": "Produce"}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var produce models.Category
	decodeBody(t, resp, &produce)

	resp = doRequest(t, app, http.MethodPost, "/api/items", map[string]string{
		"name":        "Apple",
		"category_id": produce.ID,
	}, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var apple models.Item
	decodeBody(t, resp, &apple)

	resp = doRequest(t, app, http.MethodPost, "/api/lists", map[string]string{"name": "Groceries"}, aliceCookie)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var groceries models.List
	decodeBody(t, resp, &groceries)

	resp = doRequest(t, app, http.MethodPost, "/api/list-items", map[string]string{
		"list_id": groceries.ID,
		"item_id": apple.ID,
	}, aliceCookie)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var listItem models.ListItem
	decodeBody(t, resp, &listItem)

	// Bob cannot add to, toggle within, read or delete Alice's list.
	resp = doRequest(t, app, http.MethodPost, "/api/list-items", map[string]string{
		"list_id": groceries.ID,
		"item_id": apple.ID,
	}, bobCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodPatch, "/api/list-items/"+listItem.ID+"/toggle", nil, bobCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodGet, "/api/lists/"+groceries.ID+"/items", nil, bobCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, http.MethodDelete, "/api/lists/"+groceries.ID, nil, bobCookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// Bob's own list view stays empty.
	resp = doRequest(t, app, http.MethodGet, "/api/lists", nil, bobCookie)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var bobLists []models.List
	decodeBody(t, resp, &bobLists)
	assert.Len(t, bobLists, 0)
}

package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/middleware"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/models"
	"github.com/hopeeiscoding/ShopEasy-web-app/internal/services"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Store
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/token", h.HandleToken)
}

// RegisterProtectedRoutes registers the session-gated authentication
// routes; the router passed in must already run AuthRequired.
func (h *AuthHandler) RegisterProtectedRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/logout", h.HandleLogout)
	authRoutes.Get("/me", h.HandleMe)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister handles new user registration. A successful
// registration establishes a session immediately.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := h.authService.Register(user); err != nil {
		log.Printf("Error registering user: %v", err)
		return respondError(c, err)
	}

	if err := h.establishSession(c, user.ID); err != nil {
		log.Printf("Error establishing session after register: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user.Public())
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin handles user login and establishes a session.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.establishSession(c, user.ID); err != nil {
		log.Printf("Error establishing session after login: %v", err)
		return respondError(c, err)
	}
	return c.JSON(user.Public())
}

// HandleToken authenticates by email and password and returns a signed
// JWT for clients that cannot carry a session cookie. No session is
// established.
func (h *AuthHandler) HandleToken(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}

	user, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		log.Printf("Error issuing token for user %s: %v", user.ID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"token": token,
	})
}

// HandleLogout clears the caller's session.
func (h *AuthHandler) HandleLogout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err == nil {
		if destroyErr := sess.Destroy(); destroyErr != nil {
			log.Printf("Error destroying session: %v", destroyErr)
		}
	}
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// HandleMe returns the current user's public fields.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	user, err := h.authService.GetUser(middleware.CurrentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user.Public())
}

func (h *AuthHandler) establishSession(c *fiber.Ctx, userID string) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(middleware.UserIDKey, userID)
	return sess.Save()
}

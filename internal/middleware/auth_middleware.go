package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/hopeeiscoding/ShopEasy-web-app/internal/services"
)

// UserIDKey is the Locals key under which the authenticated user's ID
// is stored for downstream handlers.
const UserIDKey = "user_id"

// AuthRequired resolves the caller's identity once per request, before
// any business logic runs. It checks the session cookie first, then
// falls back to a Bearer token for cookie-less API clients. Requests
// with neither are rejected with 401.
func AuthRequired(sessions *session.Store, authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := sessions.Get(c)
		if err == nil {
			if userID, ok := sess.Get(UserIDKey).(string); ok && userID != "" {
				c.Locals(UserIDKey, userID)
				return c.Next()
			}
		}

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				if userID, err := authService.ValidateToken(parts[1]); err == nil {
					c.Locals(UserIDKey, userID)
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Login required",
		})
	}
}

// CurrentUserID returns the authenticated user's ID set by
// AuthRequired, or an empty string on an unauthenticated request.
func CurrentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/domain"
)

// UserKey is the fiber.Locals key holding the signed-in *domain.User.
const UserKey = "user"

// RequireSession rejects requests without a valid bearer session token. When
// disabled, every request runs as the demo user.
func RequireSession(auth ports.AuthService, disabled bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if disabled {
			user := domain.DemoUser
			c.Locals(UserKey, &user)
			return c.Next()
		}

		token := bearerToken(c)
		// Browsers cannot set headers on a websocket handshake.
		if token == "" && strings.EqualFold(c.Get(fiber.HeaderUpgrade), "websocket") {
			token = c.Query("token")
		}

		user, err := auth.Authenticate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "unauthorized",
			})
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if len(auth) > len(prefix) && strings.EqualFold(auth[:len(prefix)], prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}

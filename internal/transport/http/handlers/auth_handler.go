package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
	"github.com/taskdesk/backend/internal/transport/http/dto"
	httpmw "github.com/taskdesk/backend/internal/transport/http/middleware"
)

const (
	stateCookieName = "taskdesk_oauth_state"
	stateCookiePath = "/api/v1/auth/google"
)

type AuthHandler struct {
	service ports.AuthService
	logger  *logger.Logger
}

func NewAuthHandler(service ports.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{service: service, logger: logger}
}

func (h *AuthHandler) DemoLogin(c *fiber.Ctx) error {
	session, err := h.service.DemoLogin(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "auth_demo", err)
	}
	return c.JSON(session)
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	url, state, err := h.service.GoogleLoginURL()
	if err != nil {
		return respondError(c, h.logger, "auth_google_login", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     stateCookiePath,
		MaxAge:   int((10 * time.Minute).Seconds()),
		HTTPOnly: true,
		Secure:   c.Protocol() == "https",
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect(url, fiber.StatusFound)
}

func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if errParam := c.Query("error"); errParam != "" {
		h.logger.Warnw("auth_google_denied", "error", errParam)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: errParam})
	}

	session, err := h.service.GoogleCallback(c.UserContext(), c.Query("state"), c.Cookies(stateCookieName), c.Query("code"))
	c.Cookie(&fiber.Cookie{
		Name:     stateCookieName,
		Path:     stateCookiePath,
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
	})
	if err != nil {
		return respondError(c, h.logger, "auth_google_callback", err)
	}
	return c.JSON(session)
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := c.Locals(httpmw.UserKey).(*domain.User)
	if !ok || user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthorized"})
	}
	return c.JSON(user)
}

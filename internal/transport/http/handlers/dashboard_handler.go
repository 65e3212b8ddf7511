package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
	"github.com/taskdesk/backend/internal/transport/http/dto"
)

type DashboardHandler struct {
	service ports.DashboardService
	logger  *logger.Logger
}

func NewDashboardHandler(service ports.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: logger}
}

func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	dash, err := h.service.GetDashboard(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "dashboard_get", err)
	}
	return c.JSON(dto.DashboardToResponse(dash))
}

package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/taskdesk/backend/internal/infrastructure/sysstats"
)

type HealthHandler struct {
	collector *sysstats.Collector
	driver    string
}

func NewHealthHandler(collector *sysstats.Collector, driver string) *HealthHandler {
	return &HealthHandler{collector: collector, driver: driver}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	return c.JSON(fiber.Map{
		"status": "ok",
		"store":  h.driver,
		"system": h.collector.Collect(ctx),
	})
}

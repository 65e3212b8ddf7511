package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/transport/http/dto"
)

const (
	defaultTimelineLimit = 50
	maxTimelineLimit     = 500
)

type TimelineHandler struct {
	repo ports.TimelineRepository
}

func NewTimelineHandler(repo ports.TimelineRepository) *TimelineHandler {
	return &TimelineHandler{repo: repo}
}

func (h *TimelineHandler) GetEvents(c *fiber.Ctx) error {
	rtype := c.Query("resource_type")
	rid := c.Query("resource_id")
	if rtype != "" && rid != "" {
		events, err := h.repo.GetByResource(c.UserContext(), rtype, rid)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
		}
		return c.JSON(events)
	}

	limit := c.QueryInt("limit", defaultTimelineLimit)
	if limit <= 0 || limit > maxTimelineLimit {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "limit must be between 1 and 500"})
	}
	events, err := h.repo.GetAll(c.UserContext(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(events)
}

package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/taskdesk/backend/internal/core/services"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
	"github.com/taskdesk/backend/internal/transport/http/dto"
)

// respondError maps service errors onto status codes. event prefixes the log
// line, e.g. "task_update".
func respondError(c *fiber.Ctx, log *logger.Logger, event string, err error) error {
	var verrs domain.ValidationErrors
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		log.Warnw(event+"_not_found", "error", err)
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "task not found"})
	case errors.As(err, &verrs):
		log.Warnw(event+"_validation_failed", "fields", verrs)
		msg := "validation failed"
		if errors.Is(err, services.ErrInvalidFilter) {
			msg = "invalid filter"
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg, Fields: verrs})
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrCodeExchange):
		log.Warnw(event+"_unauthorized", "error", err)
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, services.ErrInvalidState):
		log.Warnw(event+"_bad_request", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrGoogleDisabled):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrNoReportSink):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	log.Errorw(event+"_failed", "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
}

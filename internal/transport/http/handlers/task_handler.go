package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/domain"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
	"github.com/taskdesk/backend/internal/transport/http/dto"
)

type TaskHandler struct {
	service ports.TaskService
	clock   ports.Clock
	logger  *logger.Logger
}

func NewTaskHandler(service ports.TaskService, clock ports.Clock, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{service: service, clock: clock, logger: logger}
}

func filterFromQuery(c *fiber.Ctx) domain.TaskFilter {
	return dto.ParseTaskFilter(c.Query("search"), c.Query("status"), c.Query("sort_by"), c.Query("sort_order"))
}

func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	filter := filterFromQuery(c)
	tasks, err := h.service.ListTasks(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, "tasks_list", err)
	}

	return c.JSON(dto.TaskListResponse{
		Tasks:  dto.TasksToResponse(tasks, h.clock.Now()),
		Total:  len(tasks),
		Filter: filter.Normalize(),
	})
}

func (h *TaskHandler) GetTask(c *fiber.Ctx) error {
	task, err := h.service.GetTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, "task_get", err)
	}
	return c.JSON(dto.TaskToResponse(task, h.clock.Now()))
}

func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("task_create_body_parse_failed", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	input, fieldErrs := req.ToInput()
	if fieldErrs != nil {
		return respondError(c, h.logger, "task_create", fieldErrs)
	}

	task, err := h.service.CreateTask(c.UserContext(), input)
	if err != nil {
		return respondError(c, h.logger, "task_create", err)
	}

	h.logger.Infow("task_create_success", "id", task.ID)
	return c.Status(fiber.StatusCreated).JSON(dto.TaskToResponse(task, h.clock.Now()))
}

func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Warnw("task_update_body_parse_failed", "id", id, "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	input, fieldErrs := req.ToInput()
	if fieldErrs != nil {
		return respondError(c, h.logger, "task_update", fieldErrs)
	}

	task, err := h.service.UpdateTask(c.UserContext(), id, input)
	if err != nil {
		return respondError(c, h.logger, "task_update", err)
	}

	h.logger.Infow("task_update_success", "id", task.ID)
	return c.JSON(dto.TaskToResponse(task, h.clock.Now()))
}

func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteTask(c.UserContext(), id); err != nil {
		return respondError(c, h.logger, "task_delete", err)
	}

	h.logger.Infow("task_delete_success", "id", id)
	return c.SendStatus(fiber.StatusNoContent)
}

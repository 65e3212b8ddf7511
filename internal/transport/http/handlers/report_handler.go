package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/taskdesk/backend/internal/core/ports"
	"github.com/taskdesk/backend/internal/infrastructure/logger"
)

type ReportHandler struct {
	service ports.ReportService
	logger  *logger.Logger
}

func NewReportHandler(service ports.ReportService, logger *logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: logger}
}

// DownloadTasksReport renders the tasks matching the list query parameters
// as a PDF attachment.
func (h *ReportHandler) DownloadTasksReport(c *fiber.Ctx) error {
	file, err := h.service.Generate(c.UserContext(), filterFromQuery(c), c.Query("title"))
	if err != nil {
		return respondError(c, h.logger, "report_generate", err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Set("X-Report-Pages", strconv.Itoa(file.Pages))
	c.Set("X-Report-Rows", strconv.Itoa(file.Rows))
	return c.Send(file.Data)
}

func (h *ReportHandler) ArchiveTasksReport(c *fiber.Ctx) error {
	archived, err := h.service.Archive(c.UserContext(), filterFromQuery(c), c.Query("title"))
	if err != nil {
		return respondError(c, h.logger, "report_archive", err)
	}
	return c.Status(fiber.StatusCreated).JSON(archived)
}

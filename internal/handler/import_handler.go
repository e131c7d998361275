package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/service"
	"github.com/mansoorceksport/liftlog/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ImportHandler struct {
	importService *service.ImportService
}

func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// ImportLog parses a pasted workout log and merges it into the workout history.
// With dryRun set only the parsed records are returned.
func (h *ImportHandler) ImportLog(c *fiber.Ctx) error {
	var req service.ImportRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	result, err := h.importService.Import(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	telemetry.AddSpanEvent(c, "import.parsed",
		attribute.Int("import.days", len(result.Parsed)),
		attribute.Int("import.imported", result.Imported),
		attribute.Bool("import.dry_run", req.DryRun),
	)
	if req.DryRun {
		return c.JSON(result)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/service"
)

type BodyWeightHandler struct {
	workoutService *service.WorkoutService
}

func NewBodyWeightHandler(workoutService *service.WorkoutService) *BodyWeightHandler {
	return &BodyWeightHandler{workoutService: workoutService}
}

func (h *BodyWeightHandler) ListBodyWeights(c *fiber.Ctx) error {
	return c.JSON(h.workoutService.BodyWeights(c.UserContext()))
}

// LogBodyWeight upserts by date and returns the whole log
func (h *BodyWeightHandler) LogBodyWeight(c *fiber.Ctx) error {
	var req domain.BodyWeightEntry
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	entries, err := h.workoutService.LogBodyWeight(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

func (h *BodyWeightHandler) DeleteBodyWeight(c *fiber.Ctx) error {
	if err := h.workoutService.DeleteBodyWeight(c.UserContext(), c.Params("date")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

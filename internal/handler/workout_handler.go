package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/service"
)

type WorkoutHandler struct {
	workoutService *service.WorkoutService
}

func NewWorkoutHandler(workoutService *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// ListWorkouts returns the workout log, most recent first. ?limit= caps the result.
func (h *WorkoutHandler) ListWorkouts(c *fiber.Ctx) error {
	workouts := h.workoutService.Workouts(c.UserContext())
	if limit := c.QueryInt("limit", 0); limit > 0 && limit < len(workouts) {
		workouts = workouts[:limit]
	}
	return c.JSON(workouts)
}

func (h *WorkoutHandler) LogWorkout(c *fiber.Ctx) error {
	var req domain.CompletedWorkout
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	workout, err := h.workoutService.LogWorkout(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(workout)
}

// ClearWorkouts deletes the whole workout log
func (h *WorkoutHandler) ClearWorkouts(c *fiber.Ctx) error {
	if err := h.workoutService.ClearWorkouts(c.UserContext()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

type finishSessionRequest struct {
	Session domain.WorkoutSession `json:"session"`
	EndedAt *time.Time            `json:"endedAt,omitempty"` // defaults to now
	Notes   string                `json:"notes"`
}

func (h *WorkoutHandler) FinishSession(c *fiber.Ctx) error {
	var req finishSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	var end time.Time
	if req.EndedAt != nil {
		end = *req.EndedAt
	}

	workout, err := h.workoutService.FinishSession(c.UserContext(), req.Session, end, req.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(workout)
}

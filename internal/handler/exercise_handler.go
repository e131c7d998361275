package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/service"
)

type ExerciseHandler struct {
	workoutService *service.WorkoutService
}

func NewExerciseHandler(workoutService *service.WorkoutService) *ExerciseHandler {
	return &ExerciseHandler{workoutService: workoutService}
}

// ListExercises supports ?muscleGroup= filtering
func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	exercises := h.workoutService.Exercises(c.UserContext())

	if group := c.Query("muscleGroup"); group != "" {
		filtered := make([]domain.Exercise, 0, len(exercises))
		for _, ex := range exercises {
			if strings.EqualFold(ex.MuscleGroup, group) {
				filtered = append(filtered, ex)
			}
		}
		exercises = filtered
	}
	return c.JSON(exercises)
}

func (h *ExerciseHandler) CreateExercise(c *fiber.Ctx) error {
	var req domain.Exercise
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	exercise, err := h.workoutService.CreateExercise(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(exercise)
}

func (h *ExerciseHandler) UpdateExercise(c *fiber.Ctx) error {
	var req domain.Exercise
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	req.ID = c.Params("id")
	exercise, err := h.workoutService.UpdateExercise(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(exercise)
}

func (h *ExerciseHandler) DeleteExercise(c *fiber.Ctx) error {
	if err := h.workoutService.DeleteExercise(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

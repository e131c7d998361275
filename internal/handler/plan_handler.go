package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/domain"
	"github.com/mansoorceksport/liftlog/internal/service"
)

type PlanHandler struct {
	workoutService *service.WorkoutService
}

func NewPlanHandler(workoutService *service.WorkoutService) *PlanHandler {
	return &PlanHandler{workoutService: workoutService}
}

func (h *PlanHandler) ListPlans(c *fiber.Ctx) error {
	return c.JSON(h.workoutService.Plans(c.UserContext()))
}

func (h *PlanHandler) CreatePlan(c *fiber.Ctx) error {
	var req domain.WorkoutPlan
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	plan, err := h.workoutService.CreatePlan(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// UpdatePlan replaces the whole plan, use it for renames and reordering
func (h *PlanHandler) UpdatePlan(c *fiber.Ctx) error {
	var req domain.WorkoutPlan
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	req.ID = c.Params("id")
	plan, err := h.workoutService.UpdatePlan(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

func (h *PlanHandler) DeletePlan(c *fiber.Ctx) error {
	if err := h.workoutService.DeletePlan(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "deleted"})
}

func (h *PlanHandler) RenamePlan(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	plan, err := h.workoutService.RenamePlan(c.UserContext(), c.Params("id"), req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

func (h *PlanHandler) AddExercise(c *fiber.Ctx) error {
	var req struct {
		ExerciseID string `json:"exerciseId"`
		Sets       int    `json:"sets"`
		Reps       int    `json:"reps"`
	}
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	plan, err := h.workoutService.AddExerciseToPlan(c.UserContext(), c.Params("id"), req.ExerciseID, req.Sets, req.Reps)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (h *PlanHandler) RemoveExercise(c *fiber.Ctx) error {
	plan, err := h.workoutService.RemoveExerciseFromPlan(c.UserContext(), c.Params("id"), c.Params("workoutExerciseId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// StartSession returns a session for the client to fill in and finish later
func (h *PlanHandler) StartSession(c *fiber.Ctx) error {
	session, err := h.workoutService.StartSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(session)
}

package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/mansoorceksport/liftlog/internal/service"
	"github.com/mansoorceksport/liftlog/internal/stats"
)

type StatsHandler struct {
	dashboardService *service.DashboardService
}

func NewStatsHandler(dashboardService *service.DashboardService) *StatsHandler {
	return &StatsHandler{dashboardService: dashboardService}
}

// GetSummary returns the progress overview, ?weeks= sets the volume chart length
func (h *StatsHandler) GetSummary(c *fiber.Ctx) error {
	weeks := c.QueryInt("weeks", service.DefaultSummaryWeeks)
	if weeks < 1 || weeks > 104 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "weeks must be between 1 and 104"})
	}
	summary, err := h.dashboardService.Summary(c.UserContext(), weeks)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetPlates breaks ?weight= down into plates per side. ?bar= and
// ?plates=25,20,10 override the defaults.
func (h *StatsHandler) GetPlates(c *fiber.Ctx) error {
	weight, err := strconv.ParseFloat(c.Query("weight"), 64)
	if err != nil || weight <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "weight must be a positive number"})
	}

	bar := stats.DefaultBar
	if raw := c.Query("bar"); raw != "" {
		if bar, err = strconv.ParseFloat(raw, 64); err != nil || bar <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bar must be a positive number"})
		}
	}

	var plates []float64
	if raw := c.Query("plates"); raw != "" {
		for _, p := range strings.Split(raw, ",") {
			plate, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil || plate <= 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "plates must be positive numbers"})
			}
			plates = append(plates, plate)
		}
	}

	return c.JSON(stats.Plates(weight, bar, plates))
}

package handler

import (
	"vitalink/internal/domain"
	"vitalink/internal/dto"
	"vitalink/internal/middleware"
	"vitalink/internal/service"

	"github.com/gofiber/fiber/v2"
)

type GoalHandler struct {
	goalService service.GoalService
}

func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// List returns the current goal batch with derived completion state.
func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	workingSet, err := h.goalService.List(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(goalResponses(workingSet))
}

// Generate replaces the goal batch with freshly generated goals, at most
// once per local calendar day.
func (h *GoalHandler) Generate(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	workingSet, err := h.goalService.Generate(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(goalResponses(workingSet))
}

// Save persists the submitted completion flags and reports any accrued
// points.
func (h *GoalHandler) Save(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	var req dto.SaveGoalsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}
	if len(req.Goals) == 0 {
		return domain.NewValidationError("no goals to save")
	}

	// Rebuild the working set against the stored batch so difficulty (and
	// therefore the tariff) cannot be forged by the client.
	current, err := h.goalService.List(c.Context(), userID)
	if err != nil {
		return err
	}
	flags := make(map[string]bool, len(req.Goals))
	for _, g := range req.Goals {
		flags[g.ID] = g.IsCompleted
	}
	for i := range current {
		if done, ok := flags[current[i].ID]; ok {
			current[i].IsCompleted = done
		}
	}

	result, err := h.goalService.SaveChanges(c.Context(), userID, current)
	if err != nil {
		return err
	}

	resp := dto.SaveGoalsResponse{
		PointsAwarded: result.PointsAwarded,
		TotalPoints:   result.NewTotal,
		Status:        "saved",
	}
	if result.PointsAwarded > 0 {
		resp.Status = "awarded"
	}
	return c.JSON(resp)
}

func goalResponses(workingSet domain.WorkingSet) []dto.GoalResponse {
	out := make([]dto.GoalResponse, 0, len(workingSet))
	for _, item := range workingSet {
		out = append(out, dto.GoalResponse{
			ID:          item.ID,
			Goal:        item.Goal,
			Category:    string(item.Category),
			Difficulty:  string(item.Difficulty),
			IsCompleted: item.IsCompleted,
		})
	}
	return out
}

package handler

import (
	"vitalink/internal/domain"
	"vitalink/internal/dto"
	"vitalink/internal/middleware"
	"vitalink/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MetricsHandler struct {
	metricsService service.MetricsService
}

func NewMetricsHandler(metricsService service.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// SubmittedToday reports whether the daily gate is closed for the user.
func (h *MetricsHandler) SubmittedToday(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	submitted, err := h.metricsService.HasSubmittedToday(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(dto.SubmittedTodayResponse{Submitted: submitted})
}

// Submit persists today's measurements and awards the daily points. The gate
// check happens here: Submit itself always inserts, so double submission is
// refused before the service is called.
func (h *MetricsHandler) Submit(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	var req dto.MetricsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	submitted, err := h.metricsService.HasSubmittedToday(c.Context(), userID)
	if err != nil {
		return err
	}
	if submitted {
		return domain.NewValidationError("metrics were already submitted today")
	}

	result, err := h.metricsService.Submit(c.Context(), userID, req.Fields)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MetricsResponse{
		Values:      result.Record.Values,
		PointsAdded: result.PointsAdded,
		TotalPoints: result.NewTotal,
	})
}

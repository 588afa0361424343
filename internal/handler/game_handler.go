package handler

import (
	"vitalink/internal/domain"
	"vitalink/internal/dto"
	"vitalink/internal/middleware"
	"vitalink/internal/service"

	"github.com/gofiber/fiber/v2"
)

type GameHandler struct {
	gameService service.GameService
}

func NewGameHandler(gameService service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// RecordSession stores a finished mini-game and awards its points.
func (h *GameHandler) RecordSession(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	var req dto.GameSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewValidationError("invalid request body")
	}

	result, err := h.gameService.RecordSession(c.Context(), userID, domain.GameType(req.GameType), req.Score)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.GameSessionResponse{
		SessionID:   result.Session.ID,
		PointsAdded: result.PointsAdded,
		TotalPoints: result.NewTotal,
	})
}

// ListSessions returns the authenticated user's session history.
func (h *GameHandler) ListSessions(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	sessions, err := h.gameService.History(c.Context(), userID)
	if err != nil {
		return err
	}

	out := make([]dto.GameHistoryEntry, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, dto.GameHistoryEntry{
			SessionID: s.ID,
			GameType:  string(s.GameType),
			Score:     s.Score,
			PlayedAt:  s.CreatedAt,
		})
	}
	return c.JSON(out)
}

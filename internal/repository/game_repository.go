package repository

import (
	"context"
	"fmt"
	"time"

	"vitalink/internal/domain"
	"vitalink/internal/gateway"
)

// GameRepository stores finished mini-game sessions.
type GameRepository interface {
	InsertSession(ctx context.Context, session *domain.GameSession) error
	ListSessionsByUser(ctx context.Context, userID string) ([]domain.GameSession, error)
}

type gatewayGameRepository struct {
	api RowAPI
}

func NewGameRepository(api RowAPI) GameRepository {
	return &gatewayGameRepository{api: api}
}

func (r *gatewayGameRepository) InsertSession(ctx context.Context, session *domain.GameSession) error {
	row := gateway.Row{
		"id":        session.ID,
		"userId":    session.UserID,
		"gameType":  string(session.GameType),
		"score":     session.Score,
		"createdAt": session.CreatedAt.UTC().Format(time.RFC3339),
	}
	if _, err := r.api.Insert(ctx, CollectionGameSessions, []gateway.Row{row}); err != nil {
		return fmt.Errorf("failed to insert game session: %w", err)
	}
	return nil
}

func (r *gatewayGameRepository) ListSessionsByUser(ctx context.Context, userID string) ([]domain.GameSession, error) {
	rows, err := r.api.Select(ctx, CollectionGameSessions, gateway.Filter{gateway.Eq("userId", userID)})
	if err != nil {
		return nil, fmt.Errorf("failed to list game sessions: %w", err)
	}
	sessions := make([]domain.GameSession, 0, len(rows))
	for _, row := range rows {
		sessions = append(sessions, domain.GameSession{
			ID:        rowString(row, "id"),
			UserID:    rowString(row, "userId"),
			GameType:  domain.GameType(rowString(row, "gameType")),
			Score:     rowInt(row, "score"),
			CreatedAt: rowTime(row, "createdAt"),
		})
	}
	return sessions, nil
}

package service

import (
	"context"
	"time"

	"vitalink/internal/domain"
	"vitalink/internal/logger"
	"vitalink/internal/repository"
	"vitalink/internal/util"

	"go.uber.org/zap"
)

// GameService records finished mini-game sessions and routes their award
// through the ledger.
type GameService interface {
	RecordSession(ctx context.Context, userID string, gameType domain.GameType, score int) (*GameResult, error)
	History(ctx context.Context, userID string) ([]domain.GameSession, error)
}

type GameResult struct {
	Session     domain.GameSession
	PointsAdded int
	NewTotal    int
}

type gameServiceImpl struct {
	gameRepo repository.GameRepository
	ledger   PointsService
}

func NewGameService(gameRepo repository.GameRepository, ledger PointsService) GameService {
	return &gameServiceImpl{gameRepo: gameRepo, ledger: ledger}
}

func (s *gameServiceImpl) RecordSession(ctx context.Context, userID string, gameType domain.GameType, score int) (*GameResult, error) {
	if !gameType.Valid() {
		return nil, domain.NewValidationError("unknown game type: " + string(gameType))
	}
	if score < 0 {
		return nil, domain.NewValidationError("score cannot be negative")
	}

	session := domain.GameSession{
		ID:        util.NewULID(),
		UserID:    userID,
		GameType:  gameType,
		Score:     score,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.gameRepo.InsertSession(ctx, &session); err != nil {
		return nil, domain.NewPersistenceError("game_sessions insert", err)
	}

	total, err := s.ledger.Award(ctx, userID, domain.GameAwardPoints)
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Game session recorded",
		zap.String("userID", userID),
		zap.String("gameType", string(gameType)),
		zap.Int("score", score),
	)

	return &GameResult{
		Session:     session,
		PointsAdded: domain.GameAwardPoints,
		NewTotal:    total,
	}, nil
}

// History lists the user's recorded sessions.
func (s *gameServiceImpl) History(ctx context.Context, userID string) ([]domain.GameSession, error) {
	sessions, err := s.gameRepo.ListSessionsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load game sessions", err)
	}
	return sessions, nil
}

package service

import (
	"context"

	"vitalink/internal/domain"
	"vitalink/internal/logger"
	"vitalink/internal/repository"

	"go.uber.org/zap"
)

// PointsService is the ledger: the single sanctioned write path for a user's
// cumulative score. Every earning event (metrics submission, game end,
// goal-completion save) funnels through Award, and callers update their view
// of the balance only from the total Award returns.
type PointsService interface {
	Award(ctx context.Context, userID string, delta int) (int, error)
	Current(ctx context.Context, userID string) (int, error)
}

type pointsServiceImpl struct {
	pointsRepo repository.PointsRepository
}

func NewPointsService(pointsRepo repository.PointsRepository) PointsService {
	return &pointsServiceImpl{pointsRepo: pointsRepo}
}

// Award atomically increments the persisted ledger by delta and returns the
// new total. The increment happens at the storage boundary, so two
// concurrent awards for the same user both land.
func (s *pointsServiceImpl) Award(ctx context.Context, userID string, delta int) (int, error) {
	if delta <= 0 {
		return 0, domain.NewValidationError("award must be a positive number of points")
	}

	total, err := s.pointsRepo.AddPoints(ctx, userID, delta)
	if err != nil {
		return 0, domain.NewPersistenceError("user_points increment", err)
	}

	logger.Get().Info("Points awarded",
		zap.String("userID", userID),
		zap.Int("delta", delta),
		zap.Int("total", total),
	)
	return total, nil
}

func (s *pointsServiceImpl) Current(ctx context.Context, userID string) (int, error) {
	total, err := s.pointsRepo.GetPoints(ctx, userID)
	if err != nil {
		return 0, domain.NewInternalError("failed to read points", err)
	}
	return total, nil
}

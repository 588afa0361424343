package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"vitalink/internal/domain"
	"vitalink/internal/logger"
	"vitalink/internal/repository"
	"vitalink/internal/util"

	"go.uber.org/zap"
)

// MetricsService is the daily metrics gate: at most one submission per user
// per UTC calendar day, 25 points on the first successful submission of the
// day. Submit itself does not re-check the gate; the caller consults
// HasSubmittedToday first.
type MetricsService interface {
	HasSubmittedToday(ctx context.Context, userID string) (bool, error)
	Submit(ctx context.Context, userID string, rawFields map[string]string) (*MetricsResult, error)
}

// MetricsResult reports what was persisted and the ledger total after the
// award.
type MetricsResult struct {
	Record      domain.DailyMetricRecord
	PointsAdded int
	NewTotal    int
}

type metricsServiceImpl struct {
	metricsRepo repository.MetricsRepository
	ledger      PointsService
}

func NewMetricsService(metricsRepo repository.MetricsRepository, ledger PointsService) MetricsService {
	return &metricsServiceImpl{metricsRepo: metricsRepo, ledger: ledger}
}

// HasSubmittedToday is a pure read over [today 00:00 UTC, tomorrow 00:00 UTC).
func (s *metricsServiceImpl) HasSubmittedToday(ctx context.Context, userID string) (bool, error) {
	count, err := s.metricsRepo.CountForUTCDay(ctx, userID, time.Now().UTC())
	if err != nil {
		return false, domain.NewInternalError("failed to check today's submission", err)
	}
	return count > 0, nil
}

// Submit parses the raw measurements, persists the surviving fields as a new
// record and awards the fixed daily points. Empty or non-numeric fields are
// dropped silently; they never fail the submission and are never stored as
// zero placeholders.
func (s *metricsServiceImpl) Submit(ctx context.Context, userID string, rawFields map[string]string) (*MetricsResult, error) {
	appLogger := logger.Get()

	values := make(map[string]float64)
	for _, field := range domain.MetricFields {
		raw, ok := rawFields[field]
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			appLogger.Debug("Dropping non-numeric metric field",
				zap.String("userID", userID),
				zap.String("field", field),
				zap.String("value", raw),
			)
			continue
		}
		values[field] = parsed
	}

	record := domain.DailyMetricRecord{
		ID:        util.NewULID(),
		UserID:    userID,
		Values:    values,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.metricsRepo.InsertMetric(ctx, &record); err != nil {
		return nil, domain.NewPersistenceError("daily_metrics insert", err)
	}

	total, err := s.ledger.Award(ctx, userID, domain.MetricsAwardPoints)
	if err != nil {
		return nil, err
	}

	appLogger.Info("Daily metrics submitted",
		zap.String("userID", userID),
		zap.Int("fields", len(values)),
	)

	return &MetricsResult{
		Record:      record,
		PointsAdded: domain.MetricsAwardPoints,
		NewTotal:    total,
	}, nil
}

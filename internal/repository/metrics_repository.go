package repository

import (
	"context"
	"fmt"
	"time"

	"vitalink/internal/domain"
	"vitalink/internal/gateway"
)

// MetricsRepository stores the append-only daily metric records.
type MetricsRepository interface {
	CountForUTCDay(ctx context.Context, userID string, day time.Time) (int, error)
	InsertMetric(ctx context.Context, record *domain.DailyMetricRecord) error
}

type gatewayMetricsRepository struct {
	api RowAPI
}

func NewMetricsRepository(api RowAPI) MetricsRepository {
	return &gatewayMetricsRepository{api: api}
}

// CountForUTCDay counts records created within [day 00:00 UTC, next day 00:00 UTC).
func (r *gatewayMetricsRepository) CountForUTCDay(ctx context.Context, userID string, day time.Time) (int, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	rows, err := r.api.Select(ctx, CollectionDailyMetrics, gateway.Filter{
		gateway.Eq("userId", userID),
		gateway.Gte("createdAt", start.Format(time.RFC3339)),
		gateway.Lt("createdAt", end.Format(time.RFC3339)),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count daily metrics: %w", err)
	}
	return len(rows), nil
}

func (r *gatewayMetricsRepository) InsertMetric(ctx context.Context, record *domain.DailyMetricRecord) error {
	row := gateway.Row{
		"id":        record.ID,
		"userId":    record.UserID,
		"createdAt": record.CreatedAt.UTC().Format(time.RFC3339),
	}
	// Only parsed measurements are written; absent fields stay absent rather
	// than becoming zero or null placeholders.
	for field, value := range record.Values {
		row[field] = value
	}
	if _, err := r.api.Insert(ctx, CollectionDailyMetrics, []gateway.Row{row}); err != nil {
		return fmt.Errorf("failed to insert daily metric: %w", err)
	}
	return nil
}

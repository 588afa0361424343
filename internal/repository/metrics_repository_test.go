package repository

import (
	"context"
	"testing"
	"time"

	"vitalink/internal/domain"
	"vitalink/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMetricsRepository_CountForUTCDay_UsesUTCDayWindow(t *testing.T) {
	api := new(MockRowAPI)
	repo := NewMetricsRepository(api)

	// The time of day is irrelevant; only the UTC calendar day matters.
	day := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	api.On("Select", mock.Anything, CollectionDailyMetrics, gateway.Filter{
		gateway.Eq("userId", "u1"),
		gateway.Gte("createdAt", "2026-08-28T00:00:00Z"),
		gateway.Lt("createdAt", "2026-08-29T00:00:00Z"),
	}).Return([]gateway.Row{{"id": "m1"}}, nil)

	count, err := repo.CountForUTCDay(context.Background(), "u1", day)

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	api.AssertExpectations(t)
}

func TestMetricsRepository_InsertMetric_SpreadsValues(t *testing.T) {
	api := new(MockRowAPI)
	repo := NewMetricsRepository(api)

	createdAt := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	var inserted []gateway.Row
	api.On("Insert", mock.Anything, CollectionDailyMetrics, mock.Anything).
		Run(func(args mock.Arguments) {
			inserted = args.Get(2).([]gateway.Row)
		}).Return([]gateway.Row{}, nil)

	err := repo.InsertMetric(context.Background(), &domain.DailyMetricRecord{
		ID:        "m1",
		UserID:    "u1",
		CreatedAt: createdAt,
		Values:    map[string]float64{"heartRate": 72, "steps": 8000},
	})

	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.Equal(t, "u1", inserted[0]["userId"])
	assert.Equal(t, "2026-08-28T09:00:00Z", inserted[0]["createdAt"])
	assert.Equal(t, float64(72), inserted[0]["heartRate"])
	assert.Equal(t, float64(8000), inserted[0]["steps"])
	assert.NotContains(t, inserted[0], "sleepHours")
}

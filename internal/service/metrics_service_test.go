package service

import (
	"context"
	"errors"
	"testing"

	"vitalink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMetricsService_Submit_DropsEmptyAndInvalidFields(t *testing.T) {
	mockMetrics := new(MockMetricsRepository)
	mockPoints := new(MockPointsRepository)
	svc := NewMetricsService(mockMetrics, NewPointsService(mockPoints))

	var inserted *domain.DailyMetricRecord
	mockMetrics.On("InsertMetric", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		inserted = args.Get(1).(*domain.DailyMetricRecord)
	}).Return(nil)
	mockPoints.On("AddPoints", mock.Anything, "user1", domain.MetricsAwardPoints).Return(25, nil)

	result, err := svc.Submit(context.Background(), "user1", map[string]string{
		"heartRate":  "72",
		"steps":      "",
		"sleepHours": "not-a-number",
	})

	require.NoError(t, err)
	require.NotNil(t, inserted)
	assert.Equal(t, map[string]float64{"heartRate": 72}, inserted.Values)
	assert.NotContains(t, inserted.Values, "steps")
	assert.NotContains(t, inserted.Values, "sleepHours")
	assert.Equal(t, 25, result.PointsAdded)
	assert.Equal(t, 25, result.NewTotal)
	mockMetrics.AssertExpectations(t)
	mockPoints.AssertExpectations(t)
}

func TestMetricsService_Submit_InsertFailureAwardsNothing(t *testing.T) {
	mockMetrics := new(MockMetricsRepository)
	mockPoints := new(MockPointsRepository)
	svc := NewMetricsService(mockMetrics, NewPointsService(mockPoints))

	mockMetrics.On("InsertMetric", mock.Anything, mock.Anything).Return(errors.New("gateway down"))

	_, err := svc.Submit(context.Background(), "user1", map[string]string{"steps": "100"})

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodePersistence, domainErr.Code)
	mockPoints.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything)
}

func TestMetricsService_HasSubmittedToday(t *testing.T) {
	mockMetrics := new(MockMetricsRepository)
	mockPoints := new(MockPointsRepository)
	svc := NewMetricsService(mockMetrics, NewPointsService(mockPoints))

	mockMetrics.On("CountForUTCDay", mock.Anything, "user1", mock.Anything).Return(0, nil).Once()
	submitted, err := svc.HasSubmittedToday(context.Background(), "user1")
	assert.NoError(t, err)
	assert.False(t, submitted)

	mockMetrics.On("CountForUTCDay", mock.Anything, "user1", mock.Anything).Return(1, nil).Once()
	submitted, err = svc.HasSubmittedToday(context.Background(), "user1")
	assert.NoError(t, err)
	assert.True(t, submitted)
}

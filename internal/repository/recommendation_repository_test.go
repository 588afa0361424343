package repository

import (
	"context"
	"errors"
	"testing"

	"vitalink/internal/domain"
	"vitalink/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecommendationRepository_ReplaceAll_ClearsStatusesBeforeRows(t *testing.T) {
	api := new(MockRowAPI)
	repo := NewRecommendationRepository(api)

	var calls []string
	userFilter := gateway.Filter{gateway.Eq("userId", "u1")}
	api.On("Delete", mock.Anything, CollectionRecStatus, userFilter).
		Run(func(mock.Arguments) { calls = append(calls, "statuses") }).Return(nil)
	api.On("Delete", mock.Anything, CollectionRecommendations, userFilter).
		Run(func(mock.Arguments) { calls = append(calls, "recommendations") }).Return(nil)
	api.On("Insert", mock.Anything, CollectionRecommendations, mock.Anything).
		Run(func(mock.Arguments) { calls = append(calls, "insert") }).Return([]gateway.Row{}, nil)

	err := repo.ReplaceAll(context.Background(), "u1", []domain.Recommendation{
		{ID: "r1", UserID: "u1", Goal: "Run 5km", Category: domain.CategoryExercise, Difficulty: domain.DifficultyHard},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"statuses", "recommendations", "insert"}, calls)
}

func TestRecommendationRepository_ReplaceAll_StopsOnDeleteFailure(t *testing.T) {
	api := new(MockRowAPI)
	repo := NewRecommendationRepository(api)

	api.On("Delete", mock.Anything, CollectionRecStatus, mock.Anything).
		Return(errors.New("gateway down"))

	err := repo.ReplaceAll(context.Background(), "u1", nil)

	assert.ErrorContains(t, err, "failed to clear recommendation statuses")
	api.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecommendationRepository_UpsertStatuses_UsesCompositeConflictKey(t *testing.T) {
	api := new(MockRowAPI)
	repo := NewRecommendationRepository(api)

	api.On("Upsert", mock.Anything, CollectionRecStatus,
		[]gateway.Row{{"userId": "u1", "recommendationId": "r1", "isCompleted": true}},
		"userId,recommendationId").
		Return([]gateway.Row{}, nil)

	err := repo.UpsertStatuses(context.Background(), []domain.RecommendationStatus{
		{UserID: "u1", RecommendationID: "r1", IsCompleted: true},
	})

	assert.NoError(t, err)
	api.AssertExpectations(t)
}

func TestRecommendationRepository_ListByUser(t *testing.T) {
	api := new(MockRowAPI)
	repo := NewRecommendationRepository(api)

	api.On("Select", mock.Anything, CollectionRecommendations, mock.Anything).
		Return([]gateway.Row{
			{"id": "r1", "userId": "u1", "goal": "Meditate", "category": "Mental Health", "difficulty": "Easy"},
		}, nil)

	recs, err := repo.ListByUser(context.Background(), "u1")

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, domain.CategoryMentalHealth, recs[0].Category)
	assert.Equal(t, domain.DifficultyEasy, recs[0].Difficulty)
}

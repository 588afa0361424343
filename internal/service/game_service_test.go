package service

import (
	"context"
	"testing"

	"vitalink/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGameService_RecordSession_Success(t *testing.T) {
	mockGames := new(MockGameRepository)
	mockPoints := new(MockPointsRepository)
	svc := NewGameService(mockGames, NewPointsService(mockPoints))

	mockGames.On("InsertSession", mock.Anything, mock.Anything).Return(nil)
	mockPoints.On("AddPoints", mock.Anything, "user1", domain.GameAwardPoints).Return(35, nil)

	result, err := svc.RecordSession(context.Background(), "user1", domain.GameMemory, 120)

	require.NoError(t, err)
	assert.Equal(t, domain.GameAwardPoints, result.PointsAdded)
	assert.Equal(t, 35, result.NewTotal)
	assert.Equal(t, domain.GameMemory, result.Session.GameType)
	assert.NotEmpty(t, result.Session.ID)
	mockGames.AssertExpectations(t)
	mockPoints.AssertExpectations(t)
}

func TestGameService_RecordSession_UnknownGameType(t *testing.T) {
	mockGames := new(MockGameRepository)
	mockPoints := new(MockPointsRepository)
	svc := NewGameService(mockGames, NewPointsService(mockPoints))

	_, err := svc.RecordSession(context.Background(), "user1", domain.GameType("Chess"), 1)

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeValidation, domainErr.Code)
	mockGames.AssertNotCalled(t, "InsertSession", mock.Anything, mock.Anything)
	mockPoints.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything)
}

func TestGameService_History(t *testing.T) {
	mockGames := new(MockGameRepository)
	mockPoints := new(MockPointsRepository)
	svc := NewGameService(mockGames, NewPointsService(mockPoints))

	mockGames.On("ListSessionsByUser", mock.Anything, "user1").Return([]domain.GameSession{
		{ID: "s1", UserID: "user1", GameType: domain.GameClicker, Score: 40},
		{ID: "s2", UserID: "user1", GameType: domain.GameMemory, Score: 120},
	}, nil)

	sessions, err := svc.History(context.Background(), "user1")

	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestGameService_RecordSession_NegativeScore(t *testing.T) {
	mockGames := new(MockGameRepository)
	mockPoints := new(MockPointsRepository)
	svc := NewGameService(mockGames, NewPointsService(mockPoints))

	_, err := svc.RecordSession(context.Background(), "user1", domain.GameClicker, -1)

	var domainErr *domain.DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeValidation, domainErr.Code)
}

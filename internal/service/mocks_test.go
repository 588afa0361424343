package service

import (
	"context"
	"time"

	"vitalink/internal/domain"
	"vitalink/internal/gateway"

	"github.com/stretchr/testify/mock"
)

// --- MockUserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) CreateHealthProfile(ctx context.Context, profile *domain.HealthProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) GetHealthProfile(ctx context.Context, userID string) (*domain.HealthProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HealthProfile), args.Error(1)
}

func (m *MockUserRepository) UpdateHealthProfile(ctx context.Context, profile *domain.HealthProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteHealthProfile(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- MockPointsRepository ---
type MockPointsRepository struct {
	mock.Mock
}

func (m *MockPointsRepository) GetPoints(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPointsRepository) InitPoints(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPointsRepository) AddPoints(ctx context.Context, userID string, delta int) (int, error) {
	args := m.Called(ctx, userID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockPointsRepository) DeletePoints(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- MockMetricsRepository ---
type MockMetricsRepository struct {
	mock.Mock
}

func (m *MockMetricsRepository) CountForUTCDay(ctx context.Context, userID string, day time.Time) (int, error) {
	args := m.Called(ctx, userID, day)
	return args.Int(0), args.Error(1)
}

func (m *MockMetricsRepository) InsertMetric(ctx context.Context, record *domain.DailyMetricRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// --- MockGameRepository ---
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) InsertSession(ctx context.Context, session *domain.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockGameRepository) ListSessionsByUser(ctx context.Context, userID string) ([]domain.GameSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GameSession), args.Error(1)
}

// --- MockRecommendationRepository ---
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Recommendation), args.Error(1)
}

func (m *MockRecommendationRepository) ReplaceAll(ctx context.Context, userID string, recs []domain.Recommendation) error {
	args := m.Called(ctx, userID, recs)
	return args.Error(0)
}

func (m *MockRecommendationRepository) ListStatuses(ctx context.Context, userID string) ([]domain.RecommendationStatus, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecommendationStatus), args.Error(1)
}

func (m *MockRecommendationRepository) UpsertStatuses(ctx context.Context, statuses []domain.RecommendationStatus) error {
	args := m.Called(ctx, statuses)
	return args.Error(0)
}

// --- MockGoalSource ---
type MockGoalSource struct {
	mock.Mock
}

func (m *MockGoalSource) FetchGoals(ctx context.Context, userID string) ([]domain.GoalCandidate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GoalCandidate), args.Error(1)
}

// --- MockCodeSender ---
type MockCodeSender struct {
	mock.Mock
}

func (m *MockCodeSender) SendCode(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

// --- MockAuthAPI ---
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) SignUp(ctx context.Context, email, password string) (*gateway.AuthUser, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.AuthUser), args.Error(1)
}

func (m *MockAuthAPI) SignInWithPassword(ctx context.Context, email, password string) (*gateway.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Session), args.Error(1)
}

func (m *MockAuthAPI) SignOut(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

package service

import (
	"context"

	"vitalink/internal/domain"
	"vitalink/internal/repository"
)

// UserService serves the assembled profile view and health profile updates
// for an authenticated session.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateHealthProfile(ctx context.Context, health domain.HealthProfile) error
}

type userServiceImpl struct {
	userRepo   repository.UserRepository
	pointsRepo repository.PointsRepository
}

func NewUserService(userRepo repository.UserRepository, pointsRepo repository.PointsRepository) UserService {
	return &userServiceImpl{userRepo: userRepo, pointsRepo: pointsRepo}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError("user profile not found")
	}

	health, err := s.userRepo.GetHealthProfile(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load health profile", err)
	}

	points, err := s.pointsRepo.GetPoints(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("failed to load points", err)
	}

	user.Points = points
	profile := domain.Profile{User: *user}
	if health != nil {
		profile.Health = *health
	}
	return &profile, nil
}

func (s *userServiceImpl) UpdateHealthProfile(ctx context.Context, health domain.HealthProfile) error {
	if health.UserID == "" {
		return domain.NewValidationError("userId is required")
	}
	if err := s.userRepo.UpdateHealthProfile(ctx, &health); err != nil {
		return domain.NewPersistenceError("user_health_profiles upsert", err)
	}
	return nil
}

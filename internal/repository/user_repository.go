package repository

import (
	"context"
	"fmt"

	"vitalink/internal/domain"
	"vitalink/internal/gateway"
)

// UserRepository covers the identity row and its one-to-one health profile.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
	CreateHealthProfile(ctx context.Context, profile *domain.HealthProfile) error
	GetHealthProfile(ctx context.Context, userID string) (*domain.HealthProfile, error)
	UpdateHealthProfile(ctx context.Context, profile *domain.HealthProfile) error
	DeleteHealthProfile(ctx context.Context, userID string) error
}

type gatewayUserRepository struct {
	api RowAPI
}

func NewUserRepository(api RowAPI) UserRepository {
	return &gatewayUserRepository{api: api}
}

func (r *gatewayUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	row := gateway.Row{
		"id":        user.ID,
		"email":     user.Email,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
	}
	if _, err := r.api.Insert(ctx, CollectionUsers, []gateway.Row{row}); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *gatewayUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	rows, err := r.api.Select(ctx, CollectionUsers, gateway.Filter{gateway.Eq("id", userID)})
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil // not found, services decide what that means
	}
	row := rows[0]
	return &domain.User{
		ID:        rowString(row, "id"),
		Email:     rowString(row, "email"),
		FirstName: rowString(row, "firstName"),
		LastName:  rowString(row, "lastName"),
	}, nil
}

func (r *gatewayUserRepository) DeleteUser(ctx context.Context, userID string) error {
	return r.api.Delete(ctx, CollectionUsers, gateway.Filter{gateway.Eq("id", userID)})
}

func (r *gatewayUserRepository) CreateHealthProfile(ctx context.Context, profile *domain.HealthProfile) error {
	if _, err := r.api.Insert(ctx, CollectionHealthProfiles, []gateway.Row{healthRow(profile)}); err != nil {
		return fmt.Errorf("failed to create health profile: %w", err)
	}
	return nil
}

func (r *gatewayUserRepository) GetHealthProfile(ctx context.Context, userID string) (*domain.HealthProfile, error) {
	rows, err := r.api.Select(ctx, CollectionHealthProfiles, gateway.Filter{gateway.Eq("userId", userID)})
	if err != nil {
		return nil, fmt.Errorf("failed to get health profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	row := rows[0]
	return &domain.HealthProfile{
		UserID:      rowString(row, "userId"),
		DateOfBirth: rowString(row, "dateOfBirth"),
		Gender:      rowString(row, "gender"),
		Conditions:  rowString(row, "conditions"),
		Medications: rowString(row, "medications"),
		Allergies:   rowString(row, "allergies"),
	}, nil
}

func (r *gatewayUserRepository) UpdateHealthProfile(ctx context.Context, profile *domain.HealthProfile) error {
	if _, err := r.api.Upsert(ctx, CollectionHealthProfiles, []gateway.Row{healthRow(profile)}, "userId"); err != nil {
		return fmt.Errorf("failed to update health profile: %w", err)
	}
	return nil
}

func (r *gatewayUserRepository) DeleteHealthProfile(ctx context.Context, userID string) error {
	return r.api.Delete(ctx, CollectionHealthProfiles, gateway.Filter{gateway.Eq("userId", userID)})
}

func healthRow(profile *domain.HealthProfile) gateway.Row {
	return gateway.Row{
		"userId":      profile.UserID,
		"dateOfBirth": profile.DateOfBirth,
		"gender":      profile.Gender,
		"conditions":  profile.Conditions,
		"medications": profile.Medications,
		"allergies":   profile.Allergies,
	}
}

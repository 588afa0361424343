package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"vitalink/internal/gateway"
)

// PointsRepository is the storage side of the points ledger. AddPoints is an
// atomic increment performed by the backend, not a client-side
// read-modify-write, so concurrent awards cannot lose updates.
type PointsRepository interface {
	GetPoints(ctx context.Context, userID string) (int, error)
	InitPoints(ctx context.Context, userID string) error
	AddPoints(ctx context.Context, userID string, delta int) (int, error)
	DeletePoints(ctx context.Context, userID string) error
}

type gatewayPointsRepository struct {
	api RowAPI
}

func NewPointsRepository(api RowAPI) PointsRepository {
	return &gatewayPointsRepository{api: api}
}

func (r *gatewayPointsRepository) GetPoints(ctx context.Context, userID string) (int, error) {
	rows, err := r.api.Select(ctx, CollectionUserPoints, gateway.Filter{gateway.Eq("userId", userID)})
	if err != nil {
		return 0, fmt.Errorf("failed to get points: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rowInt(rows[0], "points"), nil
}

func (r *gatewayPointsRepository) InitPoints(ctx context.Context, userID string) error {
	row := gateway.Row{"userId": userID, "points": 0}
	if _, err := r.api.Upsert(ctx, CollectionUserPoints, []gateway.Row{row}, "userId"); err != nil {
		return fmt.Errorf("failed to init points: %w", err)
	}
	return nil
}

func (r *gatewayPointsRepository) AddPoints(ctx context.Context, userID string, delta int) (int, error) {
	respBody, err := r.api.RPC(ctx, "increment_user_points", gateway.Row{
		"targetUserId": userID,
		"delta":        delta,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to add points: %w", err)
	}
	// The function returns the new total as a bare number.
	var total int
	if err := json.Unmarshal(respBody, &total); err != nil {
		return 0, fmt.Errorf("failed to decode points total: %w", err)
	}
	return total, nil
}

func (r *gatewayPointsRepository) DeletePoints(ctx context.Context, userID string) error {
	return r.api.Delete(ctx, CollectionUserPoints, gateway.Filter{gateway.Eq("userId", userID)})
}

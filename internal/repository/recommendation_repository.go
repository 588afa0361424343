package repository

import (
	"context"
	"fmt"

	"vitalink/internal/domain"
	"vitalink/internal/gateway"
)

// RecommendationRepository stores goal batches and their separate completion
// statuses. ReplaceAll is delete-then-insert: regenerating goals never merges
// with the previous batch.
type RecommendationRepository interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Recommendation, error)
	ReplaceAll(ctx context.Context, userID string, recs []domain.Recommendation) error
	ListStatuses(ctx context.Context, userID string) ([]domain.RecommendationStatus, error)
	UpsertStatuses(ctx context.Context, statuses []domain.RecommendationStatus) error
}

type gatewayRecommendationRepository struct {
	api RowAPI
}

func NewRecommendationRepository(api RowAPI) RecommendationRepository {
	return &gatewayRecommendationRepository{api: api}
}

func (r *gatewayRecommendationRepository) ListByUser(ctx context.Context, userID string) ([]domain.Recommendation, error) {
	rows, err := r.api.Select(ctx, CollectionRecommendations, gateway.Filter{gateway.Eq("userId", userID)})
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	recs := make([]domain.Recommendation, 0, len(rows))
	for _, row := range rows {
		recs = append(recs, domain.Recommendation{
			ID:         rowString(row, "id"),
			UserID:     rowString(row, "userId"),
			Goal:       rowString(row, "goal"),
			Category:   domain.Category(rowString(row, "category")),
			Difficulty: domain.Difficulty(rowString(row, "difficulty")),
		})
	}
	return recs, nil
}

func (r *gatewayRecommendationRepository) ReplaceAll(ctx context.Context, userID string, recs []domain.Recommendation) error {
	userFilter := gateway.Filter{gateway.Eq("userId", userID)}
	if err := r.api.Delete(ctx, CollectionRecStatus, userFilter); err != nil {
		return fmt.Errorf("failed to clear recommendation statuses: %w", err)
	}
	if err := r.api.Delete(ctx, CollectionRecommendations, userFilter); err != nil {
		return fmt.Errorf("failed to clear recommendations: %w", err)
	}

	rows := make([]gateway.Row, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, gateway.Row{
			"id":         rec.ID,
			"userId":     rec.UserID,
			"goal":       rec.Goal,
			"category":   string(rec.Category),
			"difficulty": string(rec.Difficulty),
		})
	}
	if _, err := r.api.Insert(ctx, CollectionRecommendations, rows); err != nil {
		return fmt.Errorf("failed to insert recommendations: %w", err)
	}
	return nil
}

func (r *gatewayRecommendationRepository) ListStatuses(ctx context.Context, userID string) ([]domain.RecommendationStatus, error) {
	rows, err := r.api.Select(ctx, CollectionRecStatus, gateway.Filter{gateway.Eq("userId", userID)})
	if err != nil {
		return nil, fmt.Errorf("failed to list recommendation statuses: %w", err)
	}
	statuses := make([]domain.RecommendationStatus, 0, len(rows))
	for _, row := range rows {
		statuses = append(statuses, domain.RecommendationStatus{
			UserID:           rowString(row, "userId"),
			RecommendationID: rowString(row, "recommendationId"),
			IsCompleted:      rowBool(row, "isCompleted"),
		})
	}
	return statuses, nil
}

func (r *gatewayRecommendationRepository) UpsertStatuses(ctx context.Context, statuses []domain.RecommendationStatus) error {
	rows := make([]gateway.Row, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, gateway.Row{
			"userId":           s.UserID,
			"recommendationId": s.RecommendationID,
			"isCompleted":      s.IsCompleted,
		})
	}
	if _, err := r.api.Upsert(ctx, CollectionRecStatus, rows, "userId,recommendationId"); err != nil {
		return fmt.Errorf("failed to upsert recommendation statuses: %w", err)
	}
	return nil
}

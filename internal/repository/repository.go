package repository

import (
	"context"
	"time"

	"vitalink/internal/gateway"
)

// Collection names on the row API.
const (
	CollectionUsers           = "users"
	CollectionHealthProfiles  = "user_health_profiles"
	CollectionUserPoints      = "user_points"
	CollectionDailyMetrics    = "daily_metrics"
	CollectionGameSessions    = "game_sessions"
	CollectionRecommendations = "recommendations"
	CollectionRecStatus       = "recommendation_status"
)

// RowAPI is the slice of the gateway client the repositories consume.
type RowAPI interface {
	Select(ctx context.Context, collection string, filter gateway.Filter) ([]gateway.Row, error)
	Insert(ctx context.Context, collection string, rows []gateway.Row) ([]gateway.Row, error)
	Upsert(ctx context.Context, collection string, rows []gateway.Row, conflictKey string) ([]gateway.Row, error)
	Delete(ctx context.Context, collection string, filter gateway.Filter) error
	RPC(ctx context.Context, fn string, params gateway.Row) ([]byte, error)
}

func rowString(row gateway.Row, key string) string {
	if v, ok := row[key].(string); ok {
		return v
	}
	return ""
}

func rowInt(row gateway.Row, key string) int {
	switch v := row[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func rowFloat(row gateway.Row, key string) (float64, bool) {
	v, ok := row[key].(float64)
	return v, ok
}

func rowBool(row gateway.Row, key string) bool {
	v, _ := row[key].(bool)
	return v
}

func rowTime(row gateway.Row, key string) time.Time {
	s, ok := row[key].(string)
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

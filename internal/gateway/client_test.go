package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vitalink/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.GatewayConfig{
		ProjectURL: server.URL,
		AnonKey:    "anon-key",
		ServiceKey: "service-key",
	})
	require.NoError(t, err)
	return client, server
}

func TestClient_Select_TranslatesFilterAndRows(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/user_points", r.URL.Path)
		assert.Equal(t, "user_id=eq.u1", r.URL.RawQuery)
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		io.WriteString(w, `[{"user_id":"u1","points":42}]`)
	})

	rows, err := client.Select(context.Background(), "user_points", Filter{Eq("userId", "u1")})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "u1", rows[0]["userId"])
	assert.Equal(t, float64(42), rows[0]["points"])
	assert.NotContains(t, rows[0], "user_id")
}

func TestClient_Select_RangeFilter(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t,
			"user_id=eq.u1&created_at=gte.2026-08-28T00:00:00Z&created_at=lt.2026-08-29T00:00:00Z",
			r.URL.RawQuery)
		io.WriteString(w, `[]`)
	})

	_, err := client.Select(context.Background(), "daily_metrics", Filter{
		Eq("userId", "u1"),
		Gte("createdAt", "2026-08-28T00:00:00Z"),
		Lt("createdAt", "2026-08-29T00:00:00Z"),
	})
	assert.NoError(t, err)
}

func TestClient_Insert_SendsSnakeCaseBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var rows []map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "u1", rows[0]["user_id"])
		assert.Equal(t, float64(72), rows[0]["heart_rate"])
		assert.NotContains(t, rows[0], "heartRate")

		io.WriteString(w, `[{"id":"m1","user_id":"u1","heart_rate":72}]`)
	})

	rows, err := client.Insert(context.Background(), "daily_metrics", []Row{
		{"userId": "u1", "heartRate": 72},
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "u1", rows[0]["userId"])
}

func TestClient_Upsert_SetsConflictKeyAndMergeHeader(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "on_conflict=user_id", r.URL.RawQuery)
		assert.Equal(t, "return=representation,resolution=merge-duplicates", r.Header.Get("Prefer"))
		io.WriteString(w, `[{"user_id":"u1","points":0}]`)
	})

	rows, err := client.Upsert(context.Background(), "user_points", []Row{
		{"userId": "u1", "points": 0},
	}, "userId")

	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestClient_Delete(t *testing.T) {
	var called bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/rest/v1/recommendations", r.URL.Path)
		assert.Equal(t, "user_id=eq.u1", r.URL.RawQuery)
		w.WriteHeader(http.StatusNoContent)
	})

	err := client.Delete(context.Background(), "recommendations", Filter{Eq("userId", "u1")})
	assert.NoError(t, err)
	assert.True(t, called)
}

func TestClient_RPC_TranslatesParams(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/increment_user_points", r.URL.Path)

		var params map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
		assert.Equal(t, "u1", params["target_user_id"])
		assert.Equal(t, float64(25), params["delta"])

		io.WriteString(w, `67`)
	})

	body, err := client.RPC(context.Background(), "increment_user_points", Row{
		"targetUserId": "u1",
		"delta":        25,
	})

	require.NoError(t, err)
	assert.Equal(t, "67", string(body))
}

func TestClient_SurfacesBackendErrors(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		io.WriteString(w, `{"message":"duplicate key"}`)
	})

	_, err := client.Insert(context.Background(), "users", []Row{{"id": "u1"}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "duplicate key")
}

func TestNewClient_RequiresProjectURL(t *testing.T) {
	_, err := NewClient(config.GatewayConfig{})
	assert.Error(t, err)
}

package goalsource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vitalink/internal/domain"

	"go.uber.org/zap"
)

const webhookTimeout = 20 * time.Second

// WebhookGoalSource fetches goals from the external generation webhook:
// GET <endpoint>/<userId> returning plaintext goal lines.
type WebhookGoalSource struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewWebhookGoalSource(endpoint string, logger *zap.Logger) (*WebhookGoalSource, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("goal webhook endpoint cannot be empty")
	}
	return &WebhookGoalSource{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: webhookTimeout},
		logger:     logger,
	}, nil
}

func (s *WebhookGoalSource) FetchGoals(ctx context.Context, userID string) ([]domain.GoalCandidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, fmt.Errorf("create goal request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("goal webhook unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("goal webhook returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read goal response: %w", err)
	}

	raw := strings.TrimSpace(string(body))
	candidates := ParseGoalLines(raw, s.logger)
	if len(candidates) == 0 && raw != "" {
		return nil, fmt.Errorf("goal webhook response contained no usable lines")
	}
	return candidates, nil
}

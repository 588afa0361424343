// Package otp holds the one-time passcode delivery collaborator.
package otp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const senderTimeout = 15 * time.Second

// WebhookSender asks the delivery webhook to mail a code to the address:
// GET <endpoint>/<email> returns the code it sent as plaintext.
//
// When the webhook fails and a development fallback code is configured, the
// fallback is returned instead and the condition logged. The fallback is off
// unless explicitly enabled; production targets must not enable it.
type WebhookSender struct {
	endpoint     string
	fallbackCode string
	httpClient   *http.Client
	logger       *zap.Logger
}

func NewWebhookSender(endpoint, fallbackCode string, logger *zap.Logger) (*WebhookSender, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("otp webhook endpoint cannot be empty")
	}
	return &WebhookSender{
		endpoint:     strings.TrimRight(endpoint, "/"),
		fallbackCode: fallbackCode,
		httpClient:   &http.Client{Timeout: senderTimeout},
		logger:       logger,
	}, nil
}

func (s *WebhookSender) SendCode(ctx context.Context, email string) (string, error) {
	code, err := s.fetch(ctx, email)
	if err != nil {
		if s.fallbackCode != "" {
			s.logger.Warn("OTP webhook failed, using development fallback code",
				zap.String("email", email), zap.Error(err))
			return s.fallbackCode, nil
		}
		return "", err
	}
	return code, nil
}

func (s *WebhookSender) fetch(ctx context.Context, email string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"/"+url.PathEscape(email), nil)
	if err != nil {
		return "", fmt.Errorf("create otp request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("otp webhook unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("otp webhook returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read otp response: %w", err)
	}

	code := strings.TrimSpace(string(body))
	if code == "" {
		return "", fmt.Errorf("otp webhook returned an empty code")
	}
	return code, nil
}

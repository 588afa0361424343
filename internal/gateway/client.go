// Package gateway is the row-based CRUD client for the Supabase-style
// backend: PostgREST rows plus GoTrue email/password auth.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vitalink/internal/config"
)

// Row is a single record. Inside the service keys are camelCase; the client
// translates to and from the backend's snake_case on every call.
type Row = map[string]interface{}

// Cond is one PostgREST filter condition.
type Cond struct {
	Column string
	Op     string
	Value  interface{}
}

// Filter is a conjunction of conditions.
type Filter []Cond

func Eq(column string, value interface{}) Cond  { return Cond{Column: column, Op: "eq", Value: value} }
func Gte(column string, value interface{}) Cond { return Cond{Column: column, Op: "gte", Value: value} }
func Lt(column string, value interface{}) Cond  { return Cond{Column: column, Op: "lt", Value: value} }

const maxResponseBytes = 8 << 20 // 8 MiB

// Client wraps the backend REST API.
type Client struct {
	restURL    string
	authURL    string
	anonKey    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a new gateway client. The HTTP client carries an
// explicit timeout so a stalled backend cannot leave an action pending
// indefinitely.
func NewClient(cfg config.GatewayConfig) (*Client, error) {
	if cfg.ProjectURL == "" {
		return nil, fmt.Errorf("gateway project URL is required")
	}
	base := strings.TrimRight(cfg.ProjectURL, "/")
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid gateway project URL: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	key := cfg.ServiceKey
	if key == "" {
		key = cfg.AnonKey
	}

	return &Client{
		restURL:    base + "/rest/v1",
		authURL:    base + "/auth/v1",
		anonKey:    cfg.AnonKey,
		serviceKey: key,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Select reads rows matching the filter.
func (c *Client) Select(ctx context.Context, collection string, filter Filter) ([]Row, error) {
	respBody, err := c.request(ctx, http.MethodGet, collection, nil, filter.encode(), nil)
	if err != nil {
		return nil, err
	}
	return decodeRows(respBody)
}

// Insert appends rows and returns the stored representation.
func (c *Client) Insert(ctx context.Context, collection string, rows []Row) ([]Row, error) {
	respBody, err := c.request(ctx, http.MethodPost, collection, encodeRows(rows), "", map[string]string{
		"Prefer": "return=representation",
	})
	if err != nil {
		return nil, err
	}
	return decodeRows(respBody)
}

// Upsert inserts rows, overwriting existing rows that collide on conflictKey.
func (c *Client) Upsert(ctx context.Context, collection string, rows []Row, conflictKey string) ([]Row, error) {
	query := "on_conflict=" + ToSnakeCase(conflictKey)
	respBody, err := c.request(ctx, http.MethodPost, collection, encodeRows(rows), query, map[string]string{
		"Prefer": "return=representation,resolution=merge-duplicates",
	})
	if err != nil {
		return nil, err
	}
	return decodeRows(respBody)
}

// Delete removes rows matching the filter.
func (c *Client) Delete(ctx context.Context, collection string, filter Filter) error {
	_, err := c.request(ctx, http.MethodDelete, collection, nil, filter.encode(), nil)
	return err
}

// RPC calls a backend function, e.g. the atomic points increment.
func (c *Client) RPC(ctx context.Context, fn string, params Row) ([]byte, error) {
	body, err := json.Marshal(snakeKeys(params))
	if err != nil {
		return nil, fmt.Errorf("marshal rpc params: %w", err)
	}
	return c.do(ctx, http.MethodPost, c.restURL+"/rpc/"+fn, body, nil)
}

// Auth returns the auth sub-client.
func (c *Client) Auth() *AuthClient {
	return &AuthClient{client: c}
}

func (f Filter) encode() string {
	parts := make([]string, 0, len(f))
	for _, cond := range f {
		parts = append(parts, fmt.Sprintf("%s=%s.%v", ToSnakeCase(cond.Column), cond.Op, cond.Value))
	}
	return strings.Join(parts, "&")
}

func encodeRows(rows []Row) []byte {
	translated := make([]Row, len(rows))
	for i, r := range rows {
		translated[i] = snakeKeys(r)
	}
	body, _ := json.Marshal(translated)
	return body
}

func decodeRows(respBody []byte) ([]Row, error) {
	if len(respBody) == 0 {
		return nil, nil
	}
	var raw []Row
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	rows := make([]Row, len(raw))
	for i, r := range raw {
		rows[i] = camelKeys(r)
	}
	return rows, nil
}

// request makes a rows request against a collection.
func (c *Client) request(ctx context.Context, method, collection string, body []byte, query string, headers map[string]string) ([]byte, error) {
	u := c.restURL + "/" + collection
	if query != "" {
		u += "?" + query
	}
	return c.do(ctx, method, u, body, headers)
}

func (c *Client) do(ctx context.Context, method, u string, body []byte, headers map[string]string) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("gateway API error %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return respBody, nil
}

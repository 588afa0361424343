package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// AuthClient handles the backend's email/password auth endpoints.
type AuthClient struct {
	client *Client
}

// AuthUser is the backend's identity record.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is an authenticated backend session.
type Session struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         AuthUser `json:"user"`
}

// SignUp creates a new backend account and returns its identity.
func (a *AuthClient) SignUp(ctx context.Context, email, password string) (*AuthUser, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, err := a.client.do(ctx, http.MethodPost, a.client.authURL+"/signup", body, a.anonHeaders())
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if session.User.ID != "" {
		return &session.User, nil
	}

	// Some deployments return the bare user object instead of a session.
	var user AuthUser
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &user, nil
}

// SignInWithPassword authenticates with email/password and returns the
// backend session.
func (a *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, err := a.client.do(ctx, http.MethodPost, a.client.authURL+"/token?grant_type=password", body, a.anonHeaders())
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &session, nil
}

// SignOut revokes a backend session.
func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	headers := map[string]string{
		"apikey":        a.client.anonKey,
		"Authorization": "Bearer " + accessToken,
	}
	_, err := a.client.do(ctx, http.MethodPost, a.client.authURL+"/logout", nil, headers)
	return err
}

func (a *AuthClient) anonHeaders() map[string]string {
	return map[string]string{
		"apikey":        a.client.anonKey,
		"Authorization": "Bearer " + a.client.anonKey,
	}
}

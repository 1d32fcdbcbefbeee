// Package auth fronts the hosted identity service. The app itself never
// stores credentials; it exchanges email and password for a bearer token and
// checks token validity on protected routes.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is the token bundle returned by a successful sign-in.
type Session struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Identity is the sign-in and token-check surface the HTTP layer depends
// on. A nil Identity disables the gate entirely.
type Identity interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SessionPresent(ctx context.Context, token string) (bool, error)
}

// Client talks to a GoTrue-compatible identity endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SignIn exchanges credentials for a session via the password grant. Any
// non-200 answer maps to ErrInvalidCredentials so callers cannot tell a
// wrong password from an unknown account.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return Session{}, fmt.Errorf("marshal sign-in request: %w", err)
	}

	url := c.baseURL + "/auth/v1/token?grant_type=password"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Session{}, fmt.Errorf("create sign-in request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("sign in: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Session{}, ErrInvalidCredentials
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return Session{}, fmt.Errorf("decode sign-in response: %w", err)
	}
	return session, nil
}

// SessionPresent reports whether the token still identifies a user.
func (c *Client) SessionPresent(ctx context.Context, token string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return false, fmt.Errorf("create session check request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("check session: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, nil
	default:
		return false, fmt.Errorf("check session: unexpected status %d", resp.StatusCode)
	}
}

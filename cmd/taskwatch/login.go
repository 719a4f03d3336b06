package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BetulAktoprak/task-management-system/internal/domain"
	"github.com/BetulAktoprak/task-management-system/internal/notify"
)

// loginResponse mirrors the server's authentication response.
type loginResponse struct {
	AccessToken string      `json:"accessToken"`
	Expiration  time.Time   `json:"expiration"`
	Email       string      `json:"email"`
	Name        string      `json:"name"`
	UserID      int64       `json:"userId"`
	Role        domain.Role `json:"role"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var httpClient = &http.Client{Timeout: 15 * time.Second}

// login exchanges email and password for a credential.
func login(ctx context.Context, server, email, password string) (*loginResponse, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimRight(server, "/") + "/api/auth/login"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return nil, fmt.Errorf("login rejected (%d): %s", resp.StatusCode, e.Error)
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if out.AccessToken == "" || out.UserID <= 0 {
		return nil, fmt.Errorf("login response is missing the credential")
	}
	return &out, nil
}

// hubURL turns the server base URL into the notification hub's WebSocket
// URL.
func hubURL(server string) (string, error) {
	u, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported server url scheme %q", u.Scheme)
	}
	u.Path = strings.TrimRight(u.Path, "/") + notify.Route
	u.RawQuery = ""
	return u.String(), nil
}

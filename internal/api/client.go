// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the ShopBot backend.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Configuration constants for the backend API.
const (
	// DefaultBaseURL is the default backend base URL.
	DefaultBaseURL = "http://localhost:5000/api"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
// Shared HTTP client with connection pooling for all backend requests.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is the HTTP client for the ShopBot backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string

	// auxLimiter throttles the fire-and-forget endpoints (quick actions,
	// session list). Interactive calls are never throttled.
	auxLimiter *rate.Limiter
}

// NewClient creates a client for the given base URL. An empty baseURL falls
// back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
		userAgent:  "shopbot-tui/0.1.0",
		auxLimiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 3),
	}
}

// WithHTTPClient sets a custom HTTP client (used by tests).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// WithTimeout sets the request timeout. The shared pooled transport is kept.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	hc := *c.httpClient
	hc.Timeout = timeout
	c.httpClient = &hc
	return c
}

// WithAuxRate sets the refill interval for the auxiliary-endpoint limiter.
func (c *Client) WithAuxRate(every time.Duration, burst int) *Client {
	c.auxLimiter = rate.NewLimiter(rate.Every(every), burst)
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// AUTH ENDPOINTS
// =============================================================================

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{
		Username: username,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns the new session.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout notifies the backend that the auth session ended. Callers treat
// failures as best-effort: the local session is cleared regardless.
func (c *Client) Logout(ctx context.Context, headers http.Header, sessionID string) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", headers, logoutRequest{SessionID: sessionID}, nil)
}

// =============================================================================
// CHATBOT ENDPOINTS
// =============================================================================

// SendMessage posts one chat message under the given conversation id.
func (c *Client) SendMessage(ctx context.Context, headers http.Header, message, sessionID string) (*MessageResponse, error) {
	var out MessageResponse
	err := c.do(ctx, http.MethodPost, "/chatbot/message", headers, messageRequest{
		Message:   message,
		SessionID: sessionID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// QuickActions fetches the canned prompt suggestions. Unauthenticated.
func (c *Client) QuickActions(ctx context.Context) ([]QuickAction, error) {
	if err := c.auxLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	var out quickActionsResponse
	if err := c.do(ctx, http.MethodGet, "/chatbot/quick-actions", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.QuickActions, nil
}

// Sessions fetches the stored conversation summaries for the current user.
func (c *Client) Sessions(ctx context.Context, headers http.Header) ([]SessionSummary, error) {
	if err := c.auxLimiter.Wait(ctx); err != nil {
		return nil, err
	}
	var out sessionsResponse
	if err := c.do(ctx, http.MethodGet, "/chatbot/sessions", headers, nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

// History fetches the stored transcript. With a non-empty sessionID the
// result is scoped to that conversation; entries arrive newest-first.
func (c *Client) History(ctx context.Context, headers http.Header, sessionID string) (*HistoryResponse, error) {
	path := "/chatbot/history"
	if sessionID != "" {
		path += "?session_id=" + url.QueryEscape(sessionID)
	}
	var out HistoryResponse
	if err := c.do(ctx, http.MethodGet, path, headers, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do performs a single request attempt and decodes the JSON response.
// No retries: every failure is terminal for the triggering user action.
func (c *Client) do(ctx context.Context, method, path string, headers http.Header, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	// Correlates client and server logs for one action.
	req.Header.Set("X-Request-ID", uuid.NewString())
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	c.logRequest(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	c.logResponse(resp, time.Since(start))

	// SECURITY: cap the response body read
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.statusError(resp.StatusCode, data)
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusError converts a non-2xx response into the typed error taxonomy.
// 401 and 422 are the distinguished auth-required case.
func (c *Client) statusError(status int, body []byte) error {
	var envelope errorResponse
	_ = json.Unmarshal(body, &envelope)

	if status == http.StatusUnauthorized || status == http.StatusUnprocessableEntity {
		if envelope.Error != "" {
			return fmt.Errorf("%w: %s", ErrAuthRequired, envelope.Error)
		}
		return ErrAuthRequired
	}

	return &APIError{Status: status, Message: envelope.Error}
}

// logRequest logs an API request without exposing sensitive data.
// Does not log headers (may contain auth) or body (may contain credentials).
func (c *Client) logRequest(req *http.Request) {
	log.Printf("API Request: %s %s", req.Method, req.URL.Path)
}

// logResponse logs only status code and duration, never the body.
func (c *Client) logResponse(resp *http.Response, duration time.Duration) {
	log.Printf("API Response: %d %s (%v)", resp.StatusCode, resp.Status, duration)
}

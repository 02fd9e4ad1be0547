// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/jeranaias/shopbot-tui/internal/api"
	"github.com/jeranaias/shopbot-tui/internal/model"
	"github.com/jeranaias/shopbot-tui/internal/storage"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrMissingCredentials indicates an empty username or password.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrMissingFields indicates an incomplete registration form.
	ErrMissingFields = errors.New("all fields are required")

	// ErrPasswordMismatch indicates the confirmation does not match the password.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrPasswordTooShort indicates the password is below the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	// ErrNotAuthenticated indicates an operation that needs a session was
	// attempted without one.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// MinPasswordLen is the minimum accepted password length for registration.
const MinPasswordLen = 6

// =============================================================================
// COORDINATOR
// =============================================================================

// Service is the subset of the API client the coordinator uses.
type Service interface {
	Login(ctx context.Context, username, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*api.AuthResponse, error)
	Logout(ctx context.Context, headers http.Header, sessionID string) error
}

// Coordinator manages the authenticated session.
//
// Thread-safe: the UI reads authentication state while network commands
// complete on other goroutines.
type Coordinator struct {
	service Service
	store   *storage.StateStore
	logger  *log.Logger

	mu      sync.RWMutex
	session *model.AuthSession
}

// NewCoordinator creates a Coordinator and restores any persisted session.
func NewCoordinator(service Service, store *storage.StateStore) *Coordinator {
	c := &Coordinator{
		service: service,
		store:   store,
		logger:  log.Default(),
	}
	if store != nil {
		c.session = store.LoadSession()
	}
	return c
}

// WithLogger sets the logger used for non-fatal auth events.
func (c *Coordinator) WithLogger(logger *log.Logger) *Coordinator {
	c.logger = logger
	return c
}

// AdoptToken installs a pre-issued bearer token, bypassing interactive login.
// The token is not persisted; it lives for this process only.
func (c *Coordinator) AdoptToken(token string) {
	token = strings.TrimSpace(token)
	if token == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = &model.AuthSession{
		Token:     token,
		User:      &model.User{Username: "token"},
		SessionID: model.GenerateConversationID(),
	}
}

// =============================================================================
// LOGIN / REGISTER / LOGOUT
// =============================================================================

// Login authenticates with the server and commits the resulting session.
// Empty credentials fail locally without a network call.
func (c *Coordinator) Login(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	resp, err := c.service.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	return c.commit(resp)
}

// Register creates an account and commits the resulting session.
// All local checks run before any network call: every field present, the
// confirmation matching, and the password meeting the minimum length.
func (c *Coordinator) Register(ctx context.Context, username, email, password, confirm string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" || confirm == "" {
		return nil, ErrMissingFields
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}
	if len(password) < MinPasswordLen {
		return nil, ErrPasswordTooShort
	}

	resp, err := c.service.Register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}

	return c.commit(resp)
}

// commit installs and persists the session from an auth response.
func (c *Coordinator) commit(resp *api.AuthResponse) (*model.User, error) {
	sess := &model.AuthSession{
		Token:     resp.AccessToken,
		User:      resp.User,
		SessionID: resp.SessionID,
	}
	if !sess.IsComplete() {
		return nil, errors.New("server returned an incomplete session")
	}

	c.mu.Lock()
	c.session = sess
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.SaveSession(sess); err != nil {
			// The in-memory session still works; it just won't survive restart.
			c.logger.Printf("auth: failed to persist session: %v", err)
		}
	}

	return resp.User, nil
}

// Logout ends the session. The server call is best-effort: a failure is
// logged, never surfaced, and local state is cleared unconditionally.
func (c *Coordinator) Logout(ctx context.Context) {
	c.mu.Lock()
	sess := c.session
	c.session = nil
	c.mu.Unlock()

	if sess != nil && sess.IsComplete() {
		headers := make(http.Header)
		headers.Set("Authorization", "Bearer "+sess.Token)
		if err := c.service.Logout(ctx, headers, sess.SessionID); err != nil {
			c.logger.Printf("auth: server logout failed (session cleared anyway): %v", err)
		}
	}

	if c.store != nil {
		if err := c.store.ClearSession(); err != nil {
			c.logger.Printf("auth: failed to clear persisted session: %v", err)
		}
	}
}

// =============================================================================
// SESSION STATE
// =============================================================================

// IsAuthenticated reports whether a complete session is present.
func (c *Coordinator) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session != nil && c.session.IsComplete()
}

// CurrentUser returns the logged-in user, or nil when unauthenticated.
func (c *Coordinator) CurrentUser() *model.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	return c.session.User
}

// SessionID returns the server-assigned session id, or "" when unauthenticated.
func (c *Coordinator) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return ""
	}
	return c.session.SessionID
}

// Headers returns request headers carrying the bearer token.
// Returns ErrNotAuthenticated when no session is active.
func (c *Coordinator) Headers() (http.Header, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil || !c.session.IsComplete() {
		return nil, ErrNotAuthenticated
	}
	headers := make(http.Header)
	headers.Set("Authorization", "Bearer "+c.session.Token)
	return headers, nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable client-side state for shopbot-tui.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jeranaias/shopbot-tui/internal/model"
	"github.com/jeranaias/shopbot-tui/internal/util"
)

// =============================================================================
// STATE DOCUMENT
// =============================================================================

// state is the on-disk document. Field names mirror the browser client's
// storage keys so a reader can line the two up.
type state struct {
	AccessToken  string      `json:"access_token,omitempty"`
	User         *model.User `json:"user,omitempty"`
	SessionID    string      `json:"session_id,omitempty"`
	DraftMessage string      `json:"draft_message,omitempty"`
}

// =============================================================================
// STATE STORE
// =============================================================================

// StateStore handles durable client state. Access is synchronous; the mutex
// only guards against concurrent use from background commands.
type StateStore struct {
	mu    sync.Mutex
	path  string
	state state
}

// NewStateStore opens (or creates) the store at the default location,
// ~/.shopbot/state.json.
func NewStateStore() (*StateStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewStateStoreWithPath(filepath.Join(homeDir, ".shopbot", "state.json"))
}

// NewStateStoreWithPath opens (or creates) the store at a custom path.
// A missing or corrupted file yields an empty store rather than an error.
func NewStateStoreWithPath(path string) (*StateStore, error) {
	s := &StateStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		// Corrupted state is discarded; the user logs in again.
		s.state = state{}
	}
	return s, nil
}

// Path returns the backing file path.
func (s *StateStore) Path() string {
	return s.path
}

// flush persists the current state. Caller must hold the mutex.
func (s *StateStore) flush() error {
	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		return err
	}
	// Contains the bearer token, so keep it owner-readable only.
	return util.AtomicWriteFile(s.path, data, 0600)
}

// =============================================================================
// AUTH SESSION
// =============================================================================

// SaveSession replaces any stored auth session with the given one.
func (s *StateStore) SaveSession(sess *model.AuthSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.AccessToken = sess.Token
	s.state.User = sess.User
	s.state.SessionID = sess.SessionID
	return s.flush()
}

// LoadSession returns the stored auth session, or nil when absent.
// A partially populated session is invalid and is cleared from disk.
func (s *StateStore) LoadSession() *model.AuthSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &model.AuthSession{
		Token:     s.state.AccessToken,
		User:      s.state.User,
		SessionID: s.state.SessionID,
	}
	if sess.IsComplete() {
		return sess
	}

	if s.state.AccessToken != "" || s.state.User != nil || s.state.SessionID != "" {
		s.state.AccessToken = ""
		s.state.User = nil
		s.state.SessionID = ""
		_ = s.flush()
	}
	return nil
}

// ClearSession removes the stored auth session. The draft survives.
func (s *StateStore) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.AccessToken = ""
	s.state.User = nil
	s.state.SessionID = ""
	return s.flush()
}

// =============================================================================
// DRAFT MESSAGE
// =============================================================================

// SaveDraft persists the trimmed draft text. Empty (or whitespace-only)
// input removes the stored draft instead.
func (s *StateStore) SaveDraft(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.DraftMessage = strings.TrimSpace(text)
	return s.flush()
}

// LoadDraft returns the stored draft, or "" when none is stored.
func (s *StateStore) LoadDraft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.DraftMessage
}

// ClearDraft removes the stored draft.
func (s *StateStore) ClearDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.DraftMessage = ""
	return s.flush()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the ShopBot backend.
package api

import (
	"time"

	"github.com/jeranaias/shopbot-tui/internal/model"
	"github.com/jeranaias/shopbot-tui/internal/util"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// loginRequest is the body for POST /api/auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// registerRequest is the body for POST /api/auth/register.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// logoutRequest is the body for POST /api/auth/logout.
type logoutRequest struct {
	SessionID string `json:"session_id"`
}

// messageRequest is the body for POST /api/chatbot/message.
type messageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// AuthResponse is returned by both login and registration.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	User        *model.User `json:"user"`
	SessionID   string      `json:"session_id"`
}

// MessageResponse is the reply to a chat message. Products are optional.
type MessageResponse struct {
	BotResponse string          `json:"bot_response"`
	Products    []model.Product `json:"products,omitempty"`
}

// QuickAction is a canned prompt suggestion from the backend.
type QuickAction struct {
	Text        string `json:"text"`
	Description string `json:"description"`
}

// quickActionsResponse is the envelope for GET /api/chatbot/quick-actions.
type quickActionsResponse struct {
	QuickActions []QuickAction `json:"quick_actions"`
}

// SessionSummary describes one stored conversation on the backend.
type SessionSummary struct {
	SessionID    string `json:"session_id"`
	MessageCount int    `json:"message_count"`
	LastMessage  string `json:"last_message"`
}

// LastMessageTime parses the summary's last-message timestamp.
// Returns the zero time when the backend value cannot be parsed.
func (s *SessionSummary) LastMessageTime() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s.LastMessage); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Title returns the display title used in the recent-sessions list.
func (s *SessionSummary) Title() string {
	if s.MessageCount == 1 {
		return "New conversation"
	}
	return "Conversation (" + util.IntToString(s.MessageCount) + " messages)"
}

// sessionsResponse is the envelope for GET /api/chatbot/sessions.
type sessionsResponse struct {
	Sessions []SessionSummary `json:"sessions"`
}

// HistoryEntry is one stored exchange as returned by the history endpoint.
type HistoryEntry struct {
	Message   string `json:"message"`
	Response  string `json:"response"`
	Timestamp string `json:"timestamp"`
}

// Time parses the entry's timestamp. Returns the zero time when the backend
// value cannot be parsed.
func (h *HistoryEntry) Time() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, h.Timestamp); err == nil {
			return t
		}
	}
	return time.Time{}
}

// HistoryResponse is the envelope for GET /api/chatbot/history.
// Entries arrive newest-first; callers must reverse before rendering
// chronologically.
type HistoryResponse struct {
	ChatHistory []HistoryEntry `json:"chat_history"`
	Pagination  struct {
		Total int `json:"total"`
	} `json:"pagination"`
}

// errorResponse is the backend's error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

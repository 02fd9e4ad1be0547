// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// This file defines the Bubble Tea message types for asynchronous results.
// Intent messages (what the user asked for) live in internal/commands;
// these are the outcomes that come back from the coordinators.
package ui

import (
	"github.com/jeranaias/shopbot-tui/internal/api"
	"github.com/jeranaias/shopbot-tui/internal/model"
)

// =============================================================================
// AUTH RESULTS
// =============================================================================

// LoginResultMsg reports the outcome of a login attempt.
type LoginResultMsg struct {
	User *model.User
	Err  error
}

// RegisterResultMsg reports the outcome of a registration attempt.
type RegisterResultMsg struct {
	User *model.User
	Err  error
}

// LogoutDoneMsg signals that logout finished. Local state is already
// cleared; the server call may have failed silently.
type LogoutDoneMsg struct{}

// =============================================================================
// CHAT RESULTS
// =============================================================================

// SendResultMsg delivers the reply to a sent message, or the error that
// replaced it.
type SendResultMsg struct {
	Exchange model.Exchange
	Err      error
}

// HistoryLoadedMsg signals that a previous session was loaded into the
// conversation.
type HistoryLoadedMsg struct {
	SessionID string
	Count     int
	Err       error
}

// ClearedMsg signals that a fresh conversation was started.
type ClearedMsg struct {
	NewID string
}

// ExportDoneMsg reports the outcome of a chat export. Preview carries a
// syntax-highlighted rendering of the artifact for JSON exports.
type ExportDoneMsg struct {
	Path    string
	Preview string
	Err     error
}

// HistoryStatsResultMsg delivers the server-side stored-message total.
type HistoryStatsResultMsg struct {
	Total int
	Err   error
}

// =============================================================================
// SIDEBAR DATA
// =============================================================================

// SessionsLoadedMsg delivers the recent session list.
type SessionsLoadedMsg struct {
	Sessions []api.SessionSummary
	Err      error
}

// QuickActionsLoadedMsg delivers the quick-action buttons.
type QuickActionsLoadedMsg struct {
	Actions []api.QuickAction
	Err     error
}

// =============================================================================
// DRAFTS
// =============================================================================

// DraftRestoredMsg is emitted once at startup when a saved draft was
// placed back into the input.
type DraftRestoredMsg struct {
	Draft string
}

// =============================================================================
// CONFIG
// =============================================================================

// ConfigReloadedMsg is emitted when the config file changed on disk.
type ConfigReloadedMsg struct{}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// HandlerContext provides read-only application state for command handlers.
// This is populated by the application when executing commands.
type HandlerContext struct {
	// Username of the logged-in user ("" when unauthenticated)
	Username string

	// ConversationID is the active conversation id
	ConversationID string

	// MessageCount in the active conversation
	MessageCount int

	// Sessions known to the recent-conversations list
	Sessions []SessionInfo
}

// SessionInfo contains metadata about a stored conversation.
type SessionInfo struct {
	ID       string
	Title    string
	MsgCount int
}

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// These messages are emitted by command handlers; the application model
// reacts to them. Key chords raise the same messages.

// ShowHelpMsg triggers the help overlay.
type ShowHelpMsg struct{}

// NewChatMsg discards the transcript and starts a fresh conversation.
type NewChatMsg struct{}

// ExportChatMsg triggers a transcript export.
type ExportChatMsg struct {
	// Format is "json", "md", or "html". Default: "json".
	Format string
}

// LoadSessionMsg loads a stored conversation.
type LoadSessionMsg struct {
	ID string
}

// ListSessionsMsg refreshes and focuses the recent-conversations list.
type ListSessionsMsg struct{}

// HistoryStatsMsg requests the stored-message total from the server.
type HistoryStatsMsg struct{}

// LogoutMsg ends the session and returns to the login screen.
type LogoutMsg struct{}

// ThemeMsg switches the color theme.
type ThemeMsg struct {
	Theme string
}

// FocusInputMsg moves focus back to the message input.
type FocusInputMsg struct{}

// ErrorMsg carries a user-facing command error.
type ErrorMsg struct {
	Err error
}

// =============================================================================
// HANDLERS
// =============================================================================

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func handleHelp(ctx *HandlerContext, args []string) tea.Cmd {
	return emit(ShowHelpMsg{})
}

func handleQuit(ctx *HandlerContext, args []string) tea.Cmd {
	return tea.Quit
}

func handleNew(ctx *HandlerContext, args []string) tea.Cmd {
	return emit(NewChatMsg{})
}

func handleExport(ctx *HandlerContext, args []string) tea.Cmd {
	format := "json"
	if len(args) > 0 {
		format = strings.ToLower(args[0])
	}
	switch format {
	case "json", "md", "html":
		return emit(ExportChatMsg{Format: format})
	default:
		return emit(ErrorMsg{Err: fmt.Errorf("unknown export format %q (json, md, html)", args[0])})
	}
}

func handleLoad(ctx *HandlerContext, args []string) tea.Cmd {
	if len(args) == 0 {
		return emit(ErrorMsg{Err: fmt.Errorf("usage: /load <session_id>")})
	}
	return emit(LoadSessionMsg{ID: args[0]})
}

func handleSessions(ctx *HandlerContext, args []string) tea.Cmd {
	return emit(ListSessionsMsg{})
}

func handleHistory(ctx *HandlerContext, args []string) tea.Cmd {
	return emit(HistoryStatsMsg{})
}

func handleLogout(ctx *HandlerContext, args []string) tea.Cmd {
	return emit(LogoutMsg{})
}

func handleTheme(ctx *HandlerContext, args []string) tea.Cmd {
	if len(args) == 0 {
		return emit(ErrorMsg{Err: fmt.Errorf("usage: /theme <dark|light>")})
	}
	theme := strings.ToLower(args[0])
	if theme != "dark" && theme != "light" {
		return emit(ErrorMsg{Err: fmt.Errorf("unknown theme %q (dark, light)", args[0])})
	}
	return emit(ThemeMsg{Theme: theme})
}

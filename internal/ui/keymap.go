// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopbot-tui/internal/commands"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings for the chat interface.
type KeyMap struct {
	Submit        key.Binding
	Newline       key.Binding
	NewChat       key.Binding
	Export        key.Binding
	FocusInput    key.Binding
	Sessions      key.Binding
	Help          key.Binding
	NextProduct   key.Binding
	ProductDetail key.Binding
	CloseModal    key.Binding
	Quit          key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send message"),
		),
		Newline: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("C-j", "insert newline"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "export chat"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "focus input"),
		),
		Sessions: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "recent sessions"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+h", "f1"),
			key.WithHelp("C-h/F1", "help"),
		),
		NextProduct: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "next product"),
		),
		ProductDetail: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("C-o", "product details"),
		),
		CloseModal: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close overlay"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c/C-q", "quit"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp/C-u", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn/C-d", "scroll down"),
		),
	}
}

// ShortHelp returns the bindings for the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NewChat, k.Export, k.Help, k.Quit}
}

// FullHelp returns the bindings grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Newline, k.FocusInput},
		{k.NewChat, k.Export, k.Sessions},
		{k.NextProduct, k.ProductDetail},
		{k.ScrollUp, k.ScrollDown},
		{k.Help, k.CloseModal, k.Quit},
	}
}

// =============================================================================
// PURE DISPATCH
// =============================================================================

// Dispatch maps a chord to the intent message it raises, or nil when the
// chord has no intent mapping. Chords never mutate state here; the same
// intent messages are raised by the equivalent slash commands, so both
// surfaces share one handler.
func Dispatch(k KeyMap, msg tea.KeyMsg) tea.Msg {
	switch {
	case key.Matches(msg, k.NewChat):
		return commands.NewChatMsg{}
	case key.Matches(msg, k.Export):
		return commands.ExportChatMsg{Format: "json"}
	case key.Matches(msg, k.FocusInput):
		return commands.FocusInputMsg{}
	case key.Matches(msg, k.Sessions):
		return commands.ListSessionsMsg{}
	case key.Matches(msg, k.Help):
		return commands.ShowHelpMsg{}
	default:
		return nil
	}
}

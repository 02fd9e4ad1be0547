// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopbot-tui/internal/commands"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+e":
		return tea.KeyMsg{Type: tea.KeyCtrlE}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+h":
		return tea.KeyMsg{Type: tea.KeyCtrlH}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestDispatchRaisesIntents(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		key  string
		want tea.Msg
	}{
		{"new chat", "ctrl+n", commands.NewChatMsg{}},
		{"export defaults to json", "ctrl+e", commands.ExportChatMsg{Format: "json"}},
		{"focus input", "ctrl+k", commands.FocusInputMsg{}},
		{"sessions", "ctrl+l", commands.ListSessionsMsg{}},
		{"help", "ctrl+h", commands.ShowHelpMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dispatch(keys, keyMsg(tt.key))
			if got != tt.want {
				t.Errorf("Dispatch(%q) = %#v, want %#v", tt.key, got, tt.want)
			}
		})
	}
}

func TestDispatchIgnoresPlainKeys(t *testing.T) {
	keys := DefaultKeyMap()
	for _, s := range []string{"a", "x", "1"} {
		if got := Dispatch(keys, keyMsg(s)); got != nil {
			t.Errorf("Dispatch(%q) = %#v, want nil", s, got)
		}
	}
}

// Dispatch must not mutate anything: calling it twice with the same input
// yields the same intent.
func TestDispatchIsPure(t *testing.T) {
	keys := DefaultKeyMap()
	first := Dispatch(keys, keyMsg("ctrl+n"))
	second := Dispatch(keys, keyMsg("ctrl+n"))
	if first != second {
		t.Errorf("repeated dispatch differs: %#v vs %#v", first, second)
	}
}

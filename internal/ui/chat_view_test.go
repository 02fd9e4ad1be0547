// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopbot-tui/internal/api"
	"github.com/jeranaias/shopbot-tui/internal/auth"
	"github.com/jeranaias/shopbot-tui/internal/chat"
	"github.com/jeranaias/shopbot-tui/internal/model"
	"github.com/jeranaias/shopbot-tui/internal/storage"
	"github.com/jeranaias/shopbot-tui/internal/ui/styles"
)

func newTestChatView(t *testing.T) chatView {
	t.Helper()

	store, err := storage.NewStateStoreWithPath(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("state store: %v", err)
	}
	backend := &fakeBackend{}
	authc := auth.NewCoordinator(backend, store)
	authc.AdoptToken("test-token")
	chatc := chat.NewCoordinator(backend, authc)

	v := newChatView(chatc, store, styles.New("dark"), 500)
	v.resize(100, 30)
	return v
}

func TestSubmitEchoesPendingMessage(t *testing.T) {
	v := newTestChatView(t)
	v.input.SetValue("hi there")

	v, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a send command")
	}
	if v.pending != "hi there" {
		t.Errorf("pending = %q, want the submitted text", v.pending)
	}
	if !strings.Contains(v.viewport.View(), "hi there") {
		t.Error("transcript should echo the in-flight message")
	}
	if v.input.Value() != "" {
		t.Error("input should clear on submit")
	}

	// The reply replaces the echo.
	v, _ = v.Update(SendResultMsg{Exchange: model.Exchange{
		UserMessage: "hi there",
		BotResponse: "Here you go.",
	}})
	if v.pending != "" {
		t.Errorf("pending = %q, want cleared after the reply", v.pending)
	}
}

func TestTabCyclesQuickActionsIntoEmptyInput(t *testing.T) {
	v := newTestChatView(t)
	v.quickActions = []api.QuickAction{
		{Text: "Show me deals"},
		{Text: "Track my order"},
	}

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := v.input.Value(); got != "Show me deals" {
		t.Errorf("input = %q, want first quick action", got)
	}

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := v.input.Value(); got != "Track my order" {
		t.Errorf("input = %q, want second quick action", got)
	}

	// Cycling wraps around.
	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := v.input.Value(); got != "Show me deals" {
		t.Errorf("input = %q, want wrap to first quick action", got)
	}
}

func TestTabNeverClobbersTypedText(t *testing.T) {
	v := newTestChatView(t)
	v.quickActions = []api.QuickAction{{Text: "Show me deals"}}
	v.input.SetValue("red running shoes")

	v, _ = v.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := v.input.Value(); got != "red running shoes" {
		t.Errorf("input = %q, want typed text untouched", got)
	}
}

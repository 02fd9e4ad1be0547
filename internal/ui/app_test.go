// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopbot-tui/internal/api"
	"github.com/jeranaias/shopbot-tui/internal/auth"
	"github.com/jeranaias/shopbot-tui/internal/chat"
	"github.com/jeranaias/shopbot-tui/internal/commands"
	"github.com/jeranaias/shopbot-tui/internal/config"
	"github.com/jeranaias/shopbot-tui/internal/model"
	"github.com/jeranaias/shopbot-tui/internal/storage"
	"github.com/jeranaias/shopbot-tui/internal/ui/components"
)

// fakeBackend satisfies both auth.Service and chat.Service.
type fakeBackend struct{}

func (f *fakeBackend) Login(context.Context, string, string) (*api.AuthResponse, error) {
	return &api.AuthResponse{
		AccessToken: "tok",
		SessionID:   "sess",
		User:        &model.User{ID: 1, Username: "ada"},
	}, nil
}

func (f *fakeBackend) Register(context.Context, string, string, string) (*api.AuthResponse, error) {
	return f.Login(nil, "", "")
}

func (f *fakeBackend) Logout(context.Context, http.Header, string) error { return nil }

func (f *fakeBackend) SendMessage(context.Context, http.Header, string, string) (*api.MessageResponse, error) {
	return &api.MessageResponse{BotResponse: "Here you go."}, nil
}

func (f *fakeBackend) History(context.Context, http.Header, string) (*api.HistoryResponse, error) {
	resp := &api.HistoryResponse{}
	resp.Pagination.Total = 12
	return resp, nil
}

func (f *fakeBackend) Sessions(context.Context, http.Header) ([]api.SessionSummary, error) {
	return nil, nil
}

func (f *fakeBackend) QuickActions(context.Context) ([]api.QuickAction, error) {
	return nil, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()

	store, err := storage.NewStateStoreWithPath(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("state store: %v", err)
	}

	backend := &fakeBackend{}
	authc := auth.NewCoordinator(backend, store)
	authc.AdoptToken("test-token")
	chatc := chat.NewCoordinator(backend, authc)

	cfg := config.Default()
	app := NewApp(cfg, authc, chatc, store)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app
}

func TestEscClosesTopmostModalOnly(t *testing.T) {
	app := newTestApp(t)

	app.modals.Push(components.Modal{Kind: components.ModalSessions, Title: "Sessions"})
	app.modals.Push(components.Modal{Kind: components.ModalProduct, Title: "Product"})

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if top := app.modals.Top(); top == nil || top.Kind != components.ModalSessions {
		t.Fatal("expected sessions modal to survive the first esc")
	}

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.modals.HasModal() {
		t.Error("expected no modal after second esc")
	}
}

func TestHelpIntentOpensModal(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(commands.ShowHelpMsg{})
	if cmd == nil {
		t.Fatal("expected handled intent")
	}
	if top := app.modals.Top(); top == nil || top.Kind != components.ModalHelp {
		t.Fatal("expected help modal on top")
	}
}

func TestNewChatIntentStartsFreshConversation(t *testing.T) {
	app := newTestApp(t)
	oldID := app.chatc.ID()

	_, cmd := app.Update(commands.NewChatMsg{})
	if cmd == nil {
		t.Fatal("expected a cleared message command")
	}
	if app.chatc.ID() == oldID {
		t.Error("conversation id did not change")
	}
	if msg := cmd(); msg == nil {
		t.Error("expected ClearedMsg from command")
	} else if cleared, ok := msg.(ClearedMsg); !ok || cleared.NewID != app.chatc.ID() {
		t.Errorf("got %#v, want ClearedMsg with the new id", msg)
	}
}

func TestDraftRestoredNoticeShownOnce(t *testing.T) {
	app := newTestApp(t)

	app.Update(DraftRestoredMsg{Draft: "blue sneakers"})
	if got := app.chatView.InputValue(); got != "blue sneakers" {
		t.Errorf("input = %q, want restored draft", got)
	}
	if len(app.toasts.Toasts()) != 1 {
		t.Fatalf("got %d toasts, want 1", len(app.toasts.Toasts()))
	}

	// A second restore event must not repeat the notice.
	app.Update(DraftRestoredMsg{Draft: "blue sneakers"})
	if len(app.toasts.Toasts()) != 1 {
		t.Error("draft notice shown more than once")
	}
}

func TestUnknownSlashCommandToasts(t *testing.T) {
	app := newTestApp(t)

	if cmd := app.runCommand("/bogus"); cmd != nil {
		t.Error("unknown command should not produce a command")
	}
	if !app.toasts.HasToasts() {
		t.Error("expected an error toast for the unknown command")
	}
}

func TestSendFailureRaisesToast(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind components.ToastKind
		want string
	}{
		{"busy", chat.ErrBusy, components.ToastWarning, chat.ErrBusy.Error()},
		{"auth required", api.ErrAuthRequired, components.ToastError, "Authentication required. Please login."},
		{"server message", &api.APIError{Status: 500, Message: "backend exploded"}, components.ToastError, "backend exploded"},
		{"server without message", &api.APIError{Status: 502}, components.ToastError, "Something went wrong. Please try again."},
		{"transport", errors.New("dial tcp: connection refused"), components.ToastError, "Could not reach the server. Check your connection."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			app.Update(SendResultMsg{Err: tt.err})

			toasts := app.toasts.Toasts()
			if len(toasts) != 1 {
				t.Fatalf("got %d toasts, want 1", len(toasts))
			}
			if toasts[0].Kind != tt.kind {
				t.Errorf("kind = %v, want %v", toasts[0].Kind, tt.kind)
			}
			if toasts[0].Message != tt.want {
				t.Errorf("message = %q, want %q", toasts[0].Message, tt.want)
			}
		})
	}
}

func TestHistoryStatsIntentToastsTotal(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(commands.HistoryStatsMsg{})
	if cmd == nil {
		t.Fatal("expected a history stats command")
	}
	msg := cmd()
	result, ok := msg.(HistoryStatsResultMsg)
	if !ok {
		t.Fatalf("got %#v, want HistoryStatsResultMsg", msg)
	}
	if result.Total != 12 {
		t.Errorf("total = %d, want the server pagination total", result.Total)
	}

	app.Update(result)
	toasts := app.toasts.Toasts()
	if len(toasts) != 1 || !strings.Contains(toasts[0].Message, "12") {
		t.Errorf("toasts = %#v, want one containing the total", toasts)
	}
}

func TestJSONExportOpensPreviewModal(t *testing.T) {
	app := newTestApp(t)

	app.Update(ExportDoneMsg{Path: "chat-export.json", Preview: `{"messages": []}`})
	if top := app.modals.Top(); top == nil || top.Kind != components.ModalExport {
		t.Fatal("expected export preview modal on top")
	}
	if !app.toasts.HasToasts() {
		t.Error("expected a success toast alongside the preview")
	}
}

func TestProductCycleAndDetailModal(t *testing.T) {
	app := newTestApp(t)
	app.chatView.products = []model.Product{
		{ID: 1, Name: "Widget"},
		{ID: 2, Name: "Gadget"},
	}

	// ctrl+o opens the detail for the selected product.
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	top := app.modals.Top()
	if top == nil || top.Kind != components.ModalProduct {
		t.Fatal("expected product detail modal")
	}
	if top.Title != "Widget" {
		t.Errorf("modal title = %q, want the selected product", top.Title)
	}
	app.modals.CloseAll()

	// ctrl+p advances the selection, wrapping around.
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlO})
	if top := app.modals.Top(); top == nil || top.Title != "Gadget" {
		t.Fatal("expected detail for the next product after ctrl+p")
	}
}

func TestResizeReclassifiesBreakpoint(t *testing.T) {
	app := newTestApp(t)

	app.Update(tea.WindowSizeMsg{Width: 50, Height: 30})
	if bp := app.chatView.breakpoint; bp != components.MobileSM {
		t.Errorf("50 cols classified as %v, want mobile-sm", bp)
	}

	app.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	if bp := app.chatView.breakpoint; bp != components.Desktop {
		t.Errorf("160 cols classified as %v, want desktop", bp)
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"strings"
	"testing"

	"github.com/jeranaias/shopbot-tui/internal/api"
	"github.com/jeranaias/shopbot-tui/internal/auth"
	"github.com/jeranaias/shopbot-tui/internal/export"
	"github.com/jeranaias/shopbot-tui/internal/model"
)

// fakeService returns canned responses; block makes SendMessage wait until
// released, to hold the coordinator in the pending state.
type fakeService struct {
	sendCalls    int
	lastMessage  string
	lastSession  string
	resp         *api.MessageResponse
	sendErr      error
	history      *api.HistoryResponse
	historyErr   error
	sessions     []api.SessionSummary
	quickActions []api.QuickAction
	block        chan struct{}
}

func (f *fakeService) SendMessage(ctx context.Context, headers http.Header, message, sessionID string) (*api.MessageResponse, error) {
	f.sendCalls++
	f.lastMessage = message
	f.lastSession = sessionID
	if f.block != nil {
		<-f.block
	}
	return f.resp, f.sendErr
}

func (f *fakeService) History(ctx context.Context, headers http.Header, sessionID string) (*api.HistoryResponse, error) {
	return f.history, f.historyErr
}

func (f *fakeService) Sessions(ctx context.Context, headers http.Header) ([]api.SessionSummary, error) {
	return f.sessions, nil
}

func (f *fakeService) QuickActions(ctx context.Context) ([]api.QuickAction, error) {
	return f.quickActions, nil
}

type fakeCreds struct {
	authed bool
	user   *model.User
}

func (f *fakeCreds) Headers() (http.Header, error) {
	if !f.authed {
		return nil, auth.ErrNotAuthenticated
	}
	h := make(http.Header)
	h.Set("Authorization", "Bearer test")
	return h, nil
}

func (f *fakeCreds) CurrentUser() *model.User {
	return f.user
}

func authedCreds() *fakeCreds {
	return &fakeCreds{authed: true, user: &model.User{Username: "alice"}}
}

func TestSend_Success(t *testing.T) {
	svc := &fakeService{resp: &api.MessageResponse{
		BotResponse: "Here you go",
		Products:    []model.Product{{ID: 1, Name: "Widget"}},
	}}
	c := NewCoordinator(svc, authedCreds())

	ex, err := c.Send(context.Background(), "  show me widgets  ")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if ex.UserMessage != "show me widgets" {
		t.Errorf("UserMessage = %q, want trimmed input", ex.UserMessage)
	}
	if ex.BotResponse != "Here you go" {
		t.Errorf("BotResponse = %q", ex.BotResponse)
	}
	if len(ex.Products) != 1 {
		t.Errorf("Products len = %d, want 1", len(ex.Products))
	}
	if svc.lastSession != c.ID() {
		t.Errorf("sent session = %q, want conversation id %q", svc.lastSession, c.ID())
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
	if c.State() != StateIdle {
		t.Errorf("State = %v, want idle after completion", c.State())
	}
}

func TestSend_RejectsEmptyAndTooLong(t *testing.T) {
	svc := &fakeService{}
	c := NewCoordinator(svc, authedCreds())
	ctx := context.Background()

	if _, err := c.Send(ctx, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("whitespace err = %v, want ErrEmptyMessage", err)
	}
	if _, err := c.Send(ctx, strings.Repeat("x", DefaultMaxInput+1)); !errors.Is(err, ErrTooLong) {
		t.Errorf("long err = %v, want ErrTooLong", err)
	}
	if _, err := c.Send(ctx, strings.Repeat("界", DefaultMaxInput+1)); !errors.Is(err, ErrTooLong) {
		t.Errorf("long rune err = %v, want ErrTooLong", err)
	}
	if svc.sendCalls != 0 {
		t.Errorf("sendCalls = %d, want 0 (validation must short-circuit)", svc.sendCalls)
	}

	// Limit counts runes, not bytes: a multibyte message at the limit passes.
	svc.resp = &api.MessageResponse{BotResponse: "ok"}
	if _, err := c.Send(ctx, strings.Repeat("界", DefaultMaxInput)); err != nil {
		t.Errorf("at-limit rune message rejected: %v", err)
	}
}

func TestSend_OneInFlight(t *testing.T) {
	svc := &fakeService{
		resp:  &api.MessageResponse{BotResponse: "ok"},
		block: make(chan struct{}),
	}
	c := NewCoordinator(svc, authedCreds())

	done := make(chan error, 1)
	go func() {
		_, err := c.Send(context.Background(), "first")
		done <- err
	}()

	// Wait until the first send holds the slot.
	for c.State() != StatePending {
		runtime.Gosched()
	}

	if _, err := c.Send(context.Background(), "second"); !errors.Is(err, ErrBusy) {
		t.Errorf("concurrent send err = %v, want ErrBusy", err)
	}

	close(svc.block)
	if err := <-done; err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if svc.sendCalls != 1 {
		t.Errorf("sendCalls = %d, want 1", svc.sendCalls)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1 (rejected send must not append)", c.Len())
	}

	// Slot is free again.
	svc.block = nil
	if _, err := c.Send(context.Background(), "third"); err != nil {
		t.Errorf("send after completion failed: %v", err)
	}
}

func TestSend_Unauthenticated(t *testing.T) {
	svc := &fakeService{}
	c := NewCoordinator(svc, &fakeCreds{})

	_, err := c.Send(context.Background(), "hello")
	if !errors.Is(err, auth.ErrNotAuthenticated) {
		t.Fatalf("err = %v, want ErrNotAuthenticated", err)
	}
	if svc.sendCalls != 0 {
		t.Errorf("sendCalls = %d, want 0", svc.sendCalls)
	}
	if c.State() != StateIdle {
		t.Errorf("State = %v, want idle after rejection", c.State())
	}
}

func TestSend_ServerErrorLeavesHistoryUntouched(t *testing.T) {
	svc := &fakeService{sendErr: &api.APIError{Status: 500, Message: "boom"}}
	c := NewCoordinator(svc, authedCreds())

	_, err := c.Send(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0 (failed send must not append)", c.Len())
	}
	if c.State() != StateIdle {
		t.Errorf("State = %v, want idle after failure", c.State())
	}
}

func TestBotReply(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth required", api.ErrAuthRequired, MsgLoginPrompt},
		{"not authenticated", auth.ErrNotAuthenticated, MsgLoginPrompt},
		{"api error", &api.APIError{Status: 500, Message: "boom"}, MsgServerError},
		{"transport", errors.New("dial tcp: refused"), MsgConnectError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BotReply(tt.err); got != tt.want {
				t.Errorf("BotReply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadSession_ReversesNewestFirst(t *testing.T) {
	svc := &fakeService{history: &api.HistoryResponse{
		ChatHistory: []api.HistoryEntry{
			{Message: "third", Response: "r3", Timestamp: "2025-01-03T10:00:00"},
			{Message: "second", Response: "r2", Timestamp: "2025-01-02T10:00:00"},
			{Message: "first", Response: "r1", Timestamp: "2025-01-01T10:00:00"},
		},
	}}
	c := NewCoordinator(svc, authedCreds())

	if err := c.LoadSession(context.Background(), "session_42_abcdefghi"); err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if c.ID() != "session_42_abcdefghi" {
		t.Errorf("ID = %q, want adopted id", c.ID())
	}

	exchanges := c.Exchanges()
	if len(exchanges) != 3 {
		t.Fatalf("len = %d, want 3", len(exchanges))
	}
	for i, want := range []string{"first", "second", "third"} {
		if exchanges[i].UserMessage != want {
			t.Errorf("exchanges[%d] = %q, want %q", i, exchanges[i].UserMessage, want)
		}
	}
	if !exchanges[0].Timestamp.Before(exchanges[2].Timestamp) {
		t.Error("timestamps should be chronological after reversal")
	}
}

func TestLoadSession_ErrorKeepsCurrentConversation(t *testing.T) {
	svc := &fakeService{
		resp:       &api.MessageResponse{BotResponse: "ok"},
		historyErr: errors.New("503"),
	}
	c := NewCoordinator(svc, authedCreds())
	if _, err := c.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	before := c.ID()

	if err := c.LoadSession(context.Background(), "session_42_abcdefghi"); err == nil {
		t.Fatal("expected error")
	}
	if c.ID() != before || c.Len() != 1 {
		t.Error("failed load must not replace the conversation")
	}
}

func TestHistoryTotals(t *testing.T) {
	history := &api.HistoryResponse{
		ChatHistory: []api.HistoryEntry{
			{Message: "a", Response: "r1"},
			{Message: "b", Response: "r2"},
		},
	}
	svc := &fakeService{history: history}
	c := NewCoordinator(svc, authedCreds())

	// Without pagination the entry count stands in for the total.
	total, err := c.HistoryTotals(context.Background())
	if err != nil {
		t.Fatalf("HistoryTotals failed: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2", total)
	}

	// The server total wins when present.
	history.Pagination.Total = 37
	total, err = c.HistoryTotals(context.Background())
	if err != nil {
		t.Fatalf("HistoryTotals failed: %v", err)
	}
	if total != 37 {
		t.Errorf("total = %d, want 37", total)
	}
}

func TestHistoryTotals_Unauthenticated(t *testing.T) {
	c := NewCoordinator(&fakeService{}, &fakeCreds{})
	if _, err := c.HistoryTotals(context.Background()); !errors.Is(err, auth.ErrNotAuthenticated) {
		t.Errorf("err = %v, want ErrNotAuthenticated", err)
	}
}

func TestClear(t *testing.T) {
	svc := &fakeService{resp: &api.MessageResponse{BotResponse: "ok"}}
	c := NewCoordinator(svc, authedCreds())
	if _, err := c.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	old := c.ID()
	next := c.Clear()
	if next == old {
		t.Error("Clear must produce a distinct conversation id")
	}
	if c.ID() != next {
		t.Errorf("ID = %q, want %q", c.ID(), next)
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0 after Clear", c.Len())
	}
}

func TestExport(t *testing.T) {
	svc := &fakeService{resp: &api.MessageResponse{BotResponse: "ok"}}
	c := NewCoordinator(svc, authedCreds())

	// Empty transcript: warning, no artifact.
	if _, err := c.Export(t.TempDir()); !errors.Is(err, export.ErrEmptyConversation) {
		t.Errorf("empty export err = %v, want ErrEmptyConversation", err)
	}

	if _, err := c.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	path, err := c.Export(t.TempDir())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.HasSuffix(path, ".json") {
		t.Errorf("path = %q, want .json artifact", path)
	}
}

func TestExportAsFormats(t *testing.T) {
	svc := &fakeService{resp: &api.MessageResponse{BotResponse: "ok"}}
	c := NewCoordinator(svc, authedCreds())
	if _, err := c.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	tests := []struct {
		format string
		ext    string
	}{
		{"md", ".md"},
		{"markdown", ".md"},
		{"html", ".html"},
		{"json", ".json"},
		{"bogus", ".json"}, // unknown formats fall back to JSON
	}
	for _, tt := range tests {
		path, err := c.ExportAs(t.TempDir(), tt.format)
		if err != nil {
			t.Fatalf("ExportAs(%q) failed: %v", tt.format, err)
		}
		if !strings.HasSuffix(path, tt.ext) {
			t.Errorf("ExportAs(%q) path = %q, want %s artifact", tt.format, path, tt.ext)
		}
	}
}

func TestPreviewJSON(t *testing.T) {
	svc := &fakeService{resp: &api.MessageResponse{BotResponse: "ok"}}
	c := NewCoordinator(svc, authedCreds())

	if _, err := c.PreviewJSON(); !errors.Is(err, export.ErrEmptyConversation) {
		t.Errorf("err = %v, want ErrEmptyConversation", err)
	}

	if _, err := c.Send(context.Background(), "hello preview"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	preview, err := c.PreviewJSON()
	if err != nil {
		t.Fatalf("PreviewJSON failed: %v", err)
	}
	if !strings.Contains(preview, "hello preview") {
		t.Error("preview should contain the user message")
	}
}

func TestRecentSessions_CapsAtFive(t *testing.T) {
	var summaries []api.SessionSummary
	for i := 0; i < 8; i++ {
		summaries = append(summaries, api.SessionSummary{SessionID: "s", MessageCount: i + 1})
	}
	c := NewCoordinator(&fakeService{sessions: summaries}, authedCreds())

	got, err := c.RecentSessions(context.Background())
	if err != nil {
		t.Fatalf("RecentSessions failed: %v", err)
	}
	if len(got) != MaxRecentSessions {
		t.Errorf("len = %d, want %d", len(got), MaxRecentSessions)
	}
}

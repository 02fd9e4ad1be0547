// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// run executes a command's handler and returns the emitted message.
func run(t *testing.T, r *Registry, name string, args ...string) tea.Msg {
	t.Helper()
	cmd := r.Get(name)
	if cmd == nil {
		t.Fatalf("command %s not registered", name)
	}
	teaCmd := cmd.Handler(&HandlerContext{}, args)
	if teaCmd == nil {
		t.Fatalf("command %s returned nil tea.Cmd", name)
	}
	return teaCmd()
}

func TestRegistryAliases(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		alias, want string
	}{
		{"/h", "/help"},
		{"/?", "/help"},
		{"/q", "/quit"},
		{"/n", "/new"},
		{"/clear", "/new"},
		{"/e", "/export"},
		{"/resume", "/load"},
		{"/list", "/sessions"},
		{"/stats", "/history"},
	}
	for _, tt := range tests {
		cmd := r.Get(tt.alias)
		if cmd == nil {
			t.Errorf("alias %s not resolved", tt.alias)
			continue
		}
		if cmd.Name != tt.want {
			t.Errorf("alias %s resolved to %s, want %s", tt.alias, cmd.Name, tt.want)
		}
	}
}

func TestHandlersEmitIntents(t *testing.T) {
	r := NewRegistry()

	if _, ok := run(t, r, "/help").(ShowHelpMsg); !ok {
		t.Error("/help should emit ShowHelpMsg")
	}
	if _, ok := run(t, r, "/new").(NewChatMsg); !ok {
		t.Error("/new should emit NewChatMsg")
	}
	if _, ok := run(t, r, "/sessions").(ListSessionsMsg); !ok {
		t.Error("/sessions should emit ListSessionsMsg")
	}
	if _, ok := run(t, r, "/history").(HistoryStatsMsg); !ok {
		t.Error("/history should emit HistoryStatsMsg")
	}
	if _, ok := run(t, r, "/logout").(LogoutMsg); !ok {
		t.Error("/logout should emit LogoutMsg")
	}
}

func TestExportHandler(t *testing.T) {
	r := NewRegistry()

	if msg, ok := run(t, r, "/export").(ExportChatMsg); !ok || msg.Format != "json" {
		t.Errorf("/export = %#v, want json default", msg)
	}
	if msg, ok := run(t, r, "/export", "md").(ExportChatMsg); !ok || msg.Format != "md" {
		t.Errorf("/export md = %#v", msg)
	}
	if _, ok := run(t, r, "/export", "pdf").(ErrorMsg); !ok {
		t.Error("/export pdf should emit ErrorMsg")
	}
}

func TestLoadHandler(t *testing.T) {
	r := NewRegistry()

	if msg, ok := run(t, r, "/load", "session_1_aaaaaaaaa").(LoadSessionMsg); !ok || msg.ID != "session_1_aaaaaaaaa" {
		t.Errorf("/load = %#v", msg)
	}
	if _, ok := run(t, r, "/load").(ErrorMsg); !ok {
		t.Error("/load without args should emit ErrorMsg")
	}
}

func TestThemeHandler(t *testing.T) {
	r := NewRegistry()

	if msg, ok := run(t, r, "/theme", "light").(ThemeMsg); !ok || msg.Theme != "light" {
		t.Errorf("/theme light = %#v", msg)
	}
	if _, ok := run(t, r, "/theme", "neon").(ErrorMsg); !ok {
		t.Error("/theme neon should emit ErrorMsg")
	}
	if _, ok := run(t, r, "/theme").(ErrorMsg); !ok {
		t.Error("/theme without args should emit ErrorMsg")
	}
}

func TestParser(t *testing.T) {
	p := NewParser(NewRegistry())

	res := p.Parse("hello world")
	if res.IsCommand {
		t.Error("plain text should not parse as a command")
	}

	res = p.Parse("  /load 'session one'  ")
	if !res.IsCommand || res.Command == nil {
		t.Fatalf("parse failed: %#v", res)
	}
	if len(res.Args) != 1 || res.Args[0] != "session one" {
		t.Errorf("args = %#v, want quoted token preserved", res.Args)
	}

	res = p.Parse("/EXPORT json")
	if res.Command == nil || res.Command.Name != "/export" {
		t.Error("command matching should be case-insensitive")
	}

	res = p.Parse("/bogus")
	if res.Error == nil {
		t.Error("unknown command should set Error")
	}
}

func TestComplete(t *testing.T) {
	r := NewRegistry()

	matches := r.Complete("/e")
	found := false
	for _, m := range matches {
		if m == "/export" {
			found = true
		}
	}
	if !found {
		t.Errorf("Complete(/e) = %v, want /export included", matches)
	}

	if got := r.Complete("/zz"); len(got) != 0 {
		t.Errorf("Complete(/zz) = %v, want empty", got)
	}
}

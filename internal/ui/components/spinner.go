// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopbot-tui/internal/ui/styles"
)

// =============================================================================
// TYPING INDICATOR
// =============================================================================

// TypingIndicator animates while a chat request is pending.
type TypingIndicator struct {
	spinner spinner.Model
	label   string
	active  bool
	started time.Time
}

// NewTypingIndicator creates the indicator shown while waiting for a reply.
func NewTypingIndicator() TypingIndicator {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Indigo)

	return TypingIndicator{
		spinner: s,
		label:   "ShopBot is typing",
	}
}

// Start activates the indicator and returns its tick command.
func (t *TypingIndicator) Start() tea.Cmd {
	t.active = true
	t.started = time.Now()
	return t.spinner.Tick
}

// Stop deactivates the indicator.
func (t *TypingIndicator) Stop() {
	t.active = false
}

// Active reports whether the indicator is running.
func (t *TypingIndicator) Active() bool {
	return t.active
}

// Update advances the spinner animation.
func (t *TypingIndicator) Update(msg tea.Msg) tea.Cmd {
	if !t.active {
		return nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return cmd
}

// View renders the indicator line, or "" when inactive.
func (t *TypingIndicator) View() string {
	if !t.active {
		return ""
	}
	labelStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)
	return t.spinner.View() + " " + labelStyle.Render(t.label+"...")
}

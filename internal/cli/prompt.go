// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/jeranaias/shopbot-tui/internal/config"
)

// =============================================================================
// INTERACTIVE PROMPTS
// =============================================================================

// Prompt wraps liner with persistent input history.
type Prompt struct {
	line        *liner.State
	historyFile string
}

// NewPrompt creates a prompt with history loaded from the config dir.
func NewPrompt() *Prompt {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	historyFile := ""
	if dir, err := config.Dir(); err == nil {
		historyFile = filepath.Join(dir, "chat_history")
	}

	p := &Prompt{line: line, historyFile: historyFile}
	p.loadHistory()
	return p
}

func (p *Prompt) loadHistory() {
	if p.historyFile == "" {
		return
	}
	if f, err := os.Open(p.historyFile); err == nil {
		_, _ = p.line.ReadHistory(f)
		f.Close()
	}
}

// ReadLine reads one line, recording non-empty input in the history.
func (p *Prompt) ReadLine(prompt string) (string, error) {
	input, err := p.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		p.line.AppendHistory(input)
	}
	return input, nil
}

// Close persists the history with owner-only permissions and releases
// the terminal.
func (p *Prompt) Close() {
	if p.historyFile != "" {
		if err := config.EnsureDir(); err == nil {
			if f, err := os.OpenFile(p.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
				_, _ = p.line.WriteHistory(f)
				f.Close()
			}
		}
	}
	p.line.Close()
}

// ReadPassword reads a password without echo.
func ReadPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// IsInteractive reports whether stdin is attached to a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// TerminalWidth returns the stdout width, or a default when unavailable.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

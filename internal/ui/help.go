// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/shopbot-tui/internal/commands"
)

// =============================================================================
// HELP OVERLAY
// =============================================================================

// helpMarkdown builds the help overlay content: commands from the registry
// plus the keyboard bindings, as a markdown document.
func helpMarkdown(registry *commands.Registry, keys KeyMap) string {
	var b strings.Builder

	b.WriteString("## Commands\n\n")
	for _, cmd := range registry.All() {
		aliases := ""
		if len(cmd.Aliases) > 0 {
			aliases = " (" + strings.Join(cmd.Aliases, ", ") + ")"
		}
		fmt.Fprintf(&b, "- `%s`%s — %s\n", cmd.Usage, aliases, cmd.Description)
	}

	b.WriteString("\n## Keyboard shortcuts\n\n")
	for _, group := range keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "- `%s` — %s\n", h.Key, h.Desc)
		}
	}
	return b.String()
}

// renderHelp renders the help markdown with glamour, falling back to the
// raw text when the renderer cannot be built.
func renderHelp(registry *commands.Registry, keys KeyMap, width int) string {
	md := helpMarkdown(registry, keys)

	wrap := width - 6
	if wrap < 40 {
		wrap = 40
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"strings"
	"testing"
)

// =============================================================================
// HTML TRANSFORM TESTS
// =============================================================================

func TestToHTML_InlineRules(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold", "**hi**", "<strong>hi</strong>"},
		{"italic", "*hi*", "<em>hi</em>"},
		// The lazy bold pattern eats the leading "*", then italic pairs the
		// leftover asterisks across the emitted tag. Faithful to rule order.
		{"bold before italic", "***hi***", "<strong><em>hi</strong></em>"},
		{"mixed", "**b** and *i*", "<strong>b</strong> and <em>i</em>"},
		{"newline to break", "a\nb", "a<br>b"},
		// A lone "**" never reaches the bold rule; the italic rule pairs the
		// two asterisks as an empty emphasis. Matches the backend's rendering.
		{"unmatched bold becomes empty emphasis", "**open", "<em></em>open"},
		{"unmatched italic passes through", "*open", "*open"},
		{"plain text untouched", "hello world", "hello world"},
		{"no markdown headers", "# not a header", "# not a header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTML(tt.input); got != tt.want {
				t.Errorf("ToHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToHTML_ListItems(t *testing.T) {
	got := ToHTML("- one\n- two")
	want := "<ul><li>one</li><li>two</li></ul>"
	if got != want {
		t.Errorf("ToHTML = %q, want %q", got, want)
	}
}

func TestToHTML_NumberedItemsKeepNumber(t *testing.T) {
	got := ToHTML("1. first\n2. second")
	want := "<ul><li>1. first</li><li>2. second</li></ul>"
	if got != want {
		t.Errorf("ToHTML = %q, want %q", got, want)
	}
}

// Only the first contiguous run of list items is wrapped; the second run
// stays as bare list items. Shipped behavior, kept on purpose.
func TestToHTML_OnlyFirstListRunWrapped(t *testing.T) {
	got := ToHTML("- a\n- b\ntext between\n- c")
	want := "<ul><li>a</li><li>b</li></ul>text between<li>c</li>"
	if got != want {
		t.Errorf("ToHTML = %q, want %q", got, want)
	}
}

func TestToHTML_BoldInsideListItem(t *testing.T) {
	got := ToHTML("- **Laptop** $999")
	want := "<ul><li><strong>Laptop</strong> $999</li></ul>"
	if got != want {
		t.Errorf("ToHTML = %q, want %q", got, want)
	}
}

func TestToHTML_DashMidLineIsNotAList(t *testing.T) {
	got := ToHTML("range 5 - 10")
	if strings.Contains(got, "<li>") {
		t.Errorf("mid-line dash produced a list item: %q", got)
	}
}

// =============================================================================
// TERMINAL RENDERER TESTS
// =============================================================================

func TestRenderer_StyleHooks(t *testing.T) {
	r := Renderer{
		Bold:   func(s string) string { return "[B]" + s + "[/B]" },
		Italic: func(s string) string { return "[I]" + s + "[/I]" },
		Bullet: "  • ",
		Indent: "  ",
	}

	got := r.Render("**hi** *there*\n- item\n3. third")
	want := "[B]hi[/B] [I]there[/I]\n  • item\n  3. third"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderer_NilHooksStripMarkers(t *testing.T) {
	r := Renderer{Bullet: "- ", Indent: ""}
	if got := r.Render("**bold**"); got != "bold" {
		t.Errorf("Render = %q, want %q", got, "bold")
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup implements the constrained text-to-markup transform applied
// to bot responses.
package markup

import (
	"regexp"
	"strings"
)

// =============================================================================
// GRAMMAR
// =============================================================================

// Rule order matters: bold consumes "**" pairs before italic sees the
// remaining single "*" pairs. Both are non-greedy and never span lines.
var (
	boldRe     = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe   = regexp.MustCompile(`\*(.*?)\*`)
	numberedRe = regexp.MustCompile(`^(\d+)\. (.+)$`)
)

// line is one classified input line.
type line struct {
	content string // inline-transformed content (list marker stripped)
	isItem  bool
}

// classify splits the text into lines and applies the inline rules to each.
// List markers ("- " and "N. ") are recognized per line; the numbered marker
// keeps its number in the item text.
func classify(text string, inline func(string) string) []line {
	raw := strings.Split(text, "\n")
	lines := make([]line, 0, len(raw))

	for _, l := range raw {
		switch {
		case strings.HasPrefix(l, "- "):
			lines = append(lines, line{content: inline(l[2:]), isItem: true})
		case numberedRe.MatchString(l):
			m := numberedRe.FindStringSubmatch(l)
			lines = append(lines, line{content: m[1] + ". " + inline(m[2]), isItem: true})
		default:
			lines = append(lines, line{content: inline(l)})
		}
	}
	return lines
}

// =============================================================================
// HTML RENDERING
// =============================================================================

// ToHTML converts the text to the HTML subset used by transcript exports.
//
// Only the first contiguous run of list items is wrapped in a <ul> container;
// later runs stay as bare <li> elements. This matches shipped behavior and is
// flagged for product-owner clarification rather than silently fixed.
func ToHTML(text string) string {
	inline := func(s string) string {
		s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
		s = italicRe.ReplaceAllString(s, "<em>$1</em>")
		return s
	}

	lines := classify(text, inline)

	var sb strings.Builder
	firstRunWrapped := false
	prevWasText := false

	for i := 0; i < len(lines); i++ {
		if !lines[i].isItem {
			if prevWasText {
				sb.WriteString("<br>")
			}
			sb.WriteString(lines[i].content)
			prevWasText = true
			continue
		}

		// Collect the contiguous run of list items starting here.
		run := i
		for run < len(lines) && lines[run].isItem {
			run++
		}

		wrap := !firstRunWrapped
		if wrap {
			sb.WriteString("<ul>")
			firstRunWrapped = true
		}
		for ; i < run; i++ {
			sb.WriteString("<li>" + lines[i].content + "</li>")
		}
		i-- // outer loop increments past the run
		if wrap {
			sb.WriteString("</ul>")
		}
		prevWasText = false
	}

	return sb.String()
}

// =============================================================================
// TERMINAL RENDERING
// =============================================================================

// Renderer renders the same grammar for a terminal. The style hooks receive
// the inner text of a bold or italic span and return the styled form.
type Renderer struct {
	Bold   func(string) string
	Italic func(string) string
	Bullet string // prefix for "- " list items, e.g. "  • "
	Indent string // prefix for numbered list items, e.g. "  "
}

// Render converts the text to styled terminal lines.
func (r Renderer) Render(text string) string {
	inline := func(s string) string {
		s = boldRe.ReplaceAllStringFunc(s, func(m string) string {
			return r.style(r.Bold, boldRe, m)
		})
		s = italicRe.ReplaceAllStringFunc(s, func(m string) string {
			return r.style(r.Italic, italicRe, m)
		})
		return s
	}

	lines := classify(text, inline)
	out := make([]string, len(lines))
	for i, l := range lines {
		if l.isItem {
			if startsWithDigit(l.content) {
				out[i] = r.Indent + l.content
			} else {
				out[i] = r.Bullet + l.content
			}
		} else {
			out[i] = l.content
		}
	}
	return strings.Join(out, "\n")
}

// style applies a hook to the submatch of m, passing through when no hook set.
func (r Renderer) style(hook func(string) string, re *regexp.Regexp, m string) string {
	inner := re.FindStringSubmatch(m)[1]
	if hook == nil {
		return inner
	}
	return hook(inner)
}

func startsWithDigit(s string) bool {
	return len(s) > 0 && s[0] >= '0' && s[0] <= '9'
}

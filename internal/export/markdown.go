// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports transcripts to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts an artifact to Markdown format.
func (e *MarkdownExporter) Export(artifact *Artifact) ([]byte, error) {
	if artifact == nil {
		return nil, fmt.Errorf("artifact is nil")
	}
	if len(artifact.Messages) == 0 {
		return nil, ErrEmptyConversation
	}

	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("session: %s\n", artifact.SessionID))
	sb.WriteString(fmt.Sprintf("user: %s\n", escapeYAML(artifact.User)))
	sb.WriteString(fmt.Sprintf("messages: %d\n", len(artifact.Messages)))
	sb.WriteString(fmt.Sprintf("exported: %s\n", artifact.Timestamp.Format(time.RFC3339)))
	sb.WriteString("generator: shopbot-tui\n")
	sb.WriteString("---\n\n")

	sb.WriteString("# Chat Export\n\n")

	for _, msg := range artifact.Messages {
		sb.WriteString(fmt.Sprintf("## %s — %s\n\n", artifact.User, msg.Timestamp.Format("2006-01-02 15:04:05")))
		sb.WriteString(msg.UserMessage)
		sb.WriteString("\n\n**ShopBot**\n\n")
		sb.WriteString(msg.BotResponse)
		sb.WriteString("\n\n")

		if len(msg.Products) > 0 {
			sb.WriteString("| Product | Brand | Price | Rating |\n")
			sb.WriteString("|---------|-------|-------|--------|\n")
			for _, p := range msg.Products {
				sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
					escapeTableCell(p.Name),
					escapeTableCell(p.DisplayBrand()),
					p.FormatPrice(),
					p.Stars(),
				))
			}
			sb.WriteString("\n")
		}
	}

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeYAML quotes a YAML scalar when it contains characters that would
// change its meaning in frontmatter.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#[]{}&*!|>'\"%@`") {
		return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
	}
	return s
}

// escapeTableCell keeps pipes and newlines from breaking the table layout.
func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

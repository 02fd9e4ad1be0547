// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/jeranaias/shopbot-tui/internal/markup"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports transcripts to a standalone HTML page.
// Bot responses are rendered through the chat markup transform; user messages
// are escaped verbatim.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts an artifact to HTML format.
func (e *HTMLExporter) Export(artifact *Artifact) ([]byte, error) {
	if artifact == nil {
		return nil, fmt.Errorf("artifact is nil")
	}
	if len(artifact.Messages) == 0 {
		return nil, ErrEmptyConversation
	}

	theme := e.options.Theme
	if theme == "" {
		theme = "dark"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\">\n")
	sb.WriteString(fmt.Sprintf("<title>Chat Export — %s</title>\n", html.EscapeString(artifact.SessionID)))
	sb.WriteString("<style>\n")
	sb.WriteString(themeCSS(theme))
	sb.WriteString("</style>\n</head>\n<body>\n")

	sb.WriteString("<header>\n")
	sb.WriteString(fmt.Sprintf("<h1>Chat Export</h1>\n<p>%s &middot; %s &middot; %d messages</p>\n",
		html.EscapeString(artifact.User),
		artifact.Timestamp.Format(time.RFC3339),
		len(artifact.Messages),
	))
	sb.WriteString("</header>\n")

	for _, msg := range artifact.Messages {
		sb.WriteString("<div class=\"message user\">\n")
		sb.WriteString(fmt.Sprintf("<div class=\"meta\">%s &middot; %s</div>\n",
			html.EscapeString(artifact.User),
			msg.Timestamp.Format("2006-01-02 15:04:05"),
		))
		sb.WriteString("<div class=\"body\">" + html.EscapeString(msg.UserMessage) + "</div>\n")
		sb.WriteString("</div>\n")

		sb.WriteString("<div class=\"message bot\">\n")
		sb.WriteString("<div class=\"meta\">ShopBot</div>\n")
		sb.WriteString("<div class=\"body\">" + markup.ToHTML(msg.BotResponse) + "</div>\n")

		if len(msg.Products) > 0 {
			sb.WriteString("<div class=\"products\">\n")
			for _, p := range msg.Products {
				sb.WriteString("<div class=\"product\">")
				sb.WriteString(fmt.Sprintf("<span class=\"name\">%s</span> ", html.EscapeString(p.Name)))
				sb.WriteString(fmt.Sprintf("<span class=\"brand\">%s</span> ", html.EscapeString(p.DisplayBrand())))
				sb.WriteString(fmt.Sprintf("<span class=\"price\">%s</span> ", html.EscapeString(p.FormatPrice())))
				sb.WriteString(fmt.Sprintf("<span class=\"rating\">%s</span>", p.Stars()))
				sb.WriteString("</div>\n")
			}
			sb.WriteString("</div>\n")
		}
		sb.WriteString("</div>\n")
	}

	sb.WriteString("</body>\n</html>\n")
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// themeCSS returns the embedded stylesheet for the given theme.
func themeCSS(theme string) string {
	if theme == "light" {
		return `body { font-family: sans-serif; max-width: 48em; margin: 2em auto; color: #1a1a2e; background: #fafafa; }
.message { margin: 1em 0; padding: 0.75em 1em; border-radius: 8px; }
.message.user { background: #e8eaf6; }
.message.bot { background: #ffffff; border: 1px solid #ddd; }
.meta { font-size: 0.8em; color: #666; margin-bottom: 0.5em; }
.products { margin-top: 0.75em; font-size: 0.9em; }
.product .price { font-weight: bold; }
`
	}
	return `body { font-family: sans-serif; max-width: 48em; margin: 2em auto; color: #e0e0e0; background: #16161e; }
.message { margin: 1em 0; padding: 0.75em 1em; border-radius: 8px; }
.message.user { background: #24283b; }
.message.bot { background: #1a1b26; border: 1px solid #2f334d; }
.meta { font-size: 0.8em; color: #787c99; margin-bottom: 0.5em; }
.products { margin-top: 0.75em; font-size: 0.9em; }
.product .price { font-weight: bold; }
`
}

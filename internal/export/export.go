// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/shopbot-tui/internal/model"
)

// ErrEmptyConversation indicates an export was requested with no completed
// exchanges. The caller shows a warning instead of writing an empty artifact.
var ErrEmptyConversation = errors.New("no messages to export")

// =============================================================================
// ARTIFACT
// =============================================================================

// Artifact is the exported transcript. Messages holds exactly the completed
// exchanges of the conversation, in chronological order.
type Artifact struct {
	SessionID string           `json:"session_id"`
	Timestamp time.Time        `json:"timestamp"`
	User      string           `json:"user"`
	Messages  []model.Exchange `json:"messages"`
}

// NewArtifact builds an export artifact from a conversation.
// Returns ErrEmptyConversation when there is nothing to export.
func NewArtifact(conv *model.Conversation, username string) (*Artifact, error) {
	if conv == nil || conv.IsEmpty() {
		return nil, ErrEmptyConversation
	}
	messages := make([]model.Exchange, len(conv.Exchanges))
	copy(messages, conv.Exchanges)
	return &Artifact{
		SessionID: conv.ID,
		Timestamp: time.Now(),
		User:      username,
		Messages:  messages,
	}, nil
}

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter defines the interface for transcript exporters.
type Exporter interface {
	// Export converts an artifact to the target format and returns the content.
	Export(artifact *Artifact) ([]byte, error)

	// FileExtension returns the appropriate file extension (e.g., ".json").
	FileExtension() string

	// MimeType returns the MIME type for the exported format.
	MimeType() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory where files will be saved.
	// Default: current working directory
	OutputDir string

	// Theme for HTML export ("light" or "dark").
	// Default: "dark"
	Theme string
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir: ".",
		Theme:     "dark",
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// Filename returns the export filename for the given day and extension,
// e.g. "chat-export-2025-03-14.json".
func Filename(t time.Time, ext string) string {
	return "chat-export-" + t.Format("2006-01-02") + ext
}

// ExportToFile exports an artifact to a file using the specified exporter.
// Returns the output file path or an error.
func ExportToFile(artifact *Artifact, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(artifact)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	dir := opts.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	outputPath := filepath.Join(dir, Filename(time.Now(), exporter.FileExtension()))
	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return outputPath, nil
}

// ExportJSON writes the canonical JSON artifact.
func ExportJSON(artifact *Artifact, opts *Options) (string, error) {
	return ExportToFile(artifact, NewJSONExporter(opts), opts)
}

// ExportMarkdown writes a Markdown rendition of the artifact.
func ExportMarkdown(artifact *Artifact, opts *Options) (string, error) {
	return ExportToFile(artifact, NewMarkdownExporter(opts), opts)
}

// ExportHTML writes an HTML rendition of the artifact.
func ExportHTML(artifact *Artifact, opts *Options) (string, error) {
	return ExportToFile(artifact, NewHTMLExporter(opts), opts)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopbot-tui/internal/ui/styles"
)

// =============================================================================
// MODAL STACK
// =============================================================================

// ModalKind identifies what a modal layer is showing.
type ModalKind int

const (
	// ModalHelp is the keyboard shortcut / command reference overlay.
	ModalHelp ModalKind = iota
	// ModalProduct is the product detail overlay.
	ModalProduct
	// ModalSessions is the session picker overlay.
	ModalSessions
	// ModalConfirm is a yes/no confirmation overlay.
	ModalConfirm
	// ModalExport is the post-export artifact preview overlay.
	ModalExport
)

// Modal is one overlay layer. Title and Content are pre-rendered strings;
// Data carries the subject (e.g. a product) for the view to re-render on
// resize.
type Modal struct {
	Kind    ModalKind
	Title   string
	Content string
	Data    any
}

// ModalStack manages layered overlays. Only the topmost layer receives
// input, and a close request removes exactly one layer.
type ModalStack struct {
	layers []Modal
}

// NewModalStack creates an empty stack.
func NewModalStack() *ModalStack {
	return &ModalStack{layers: make([]Modal, 0, 2)}
}

// Push adds a modal on top of the stack.
func (s *ModalStack) Push(m Modal) {
	s.layers = append(s.layers, m)
}

// CloseTop removes the topmost modal only. Layers underneath remain.
// Returns false if the stack was already empty.
func (s *ModalStack) CloseTop() bool {
	if len(s.layers) == 0 {
		return false
	}
	s.layers = s.layers[:len(s.layers)-1]
	return true
}

// Top returns the topmost modal, or nil when no modal is open.
func (s *ModalStack) Top() *Modal {
	if len(s.layers) == 0 {
		return nil
	}
	return &s.layers[len(s.layers)-1]
}

// HasModal returns true if any modal is open.
func (s *ModalStack) HasModal() bool {
	return len(s.layers) > 0
}

// Depth returns the number of open layers.
func (s *ModalStack) Depth() int {
	return len(s.layers)
}

// CloseAll empties the stack.
func (s *ModalStack) CloseAll() {
	s.layers = s.layers[:0]
}

// =============================================================================
// MODAL RENDERING
// =============================================================================

// RenderModal renders the topmost modal centered in the viewport.
// Returns "" when no modal is open.
func (s *ModalStack) RenderModal(theme *styles.Theme, width, height int) string {
	top := s.Top()
	if top == nil {
		return ""
	}

	boxWidth := width * 3 / 4
	if boxWidth > 80 {
		boxWidth = 80
	}
	if boxWidth < 30 {
		boxWidth = width - 4
	}

	title := theme.ModalTitle.Render(top.Title)
	hint := theme.ModalDimmed.Render("esc to close")
	body := lipgloss.JoinVertical(lipgloss.Left, title, "", top.Content, "", hint)

	box := theme.ModalBox.
		Width(boxWidth).
		MaxHeight(height - 2).
		Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

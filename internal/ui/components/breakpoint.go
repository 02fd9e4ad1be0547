// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

// =============================================================================
// RESPONSIVE BREAKPOINTS
// =============================================================================

// Breakpoint is a layout tier derived from the viewport width.
type Breakpoint int

const (
	// MobileSM is the narrowest tier (width <= 480px): single column,
	// sidebars hidden, compact bubbles.
	MobileSM Breakpoint = iota
	// MobileLG covers 481-768px: single column with full-width bubbles.
	MobileLG
	// Tablet covers 769-1024px: transcript plus one collapsible sidebar.
	Tablet
	// Desktop is everything above 1024px: transcript with both sidebars.
	Desktop
)

// Width thresholds in pixels. A width equal to a threshold belongs to the
// smaller tier.
const (
	MobileSMMax = 480
	MobileLGMax = 768
	TabletMax   = 1024
)

// CellWidth is the assumed pixel width of one terminal cell. Terminals do
// not report pixel sizes, so column counts are scaled by this factor before
// classification; a 100-column terminal maps to the Tablet tier.
const CellWidth = 8

// Classify returns the breakpoint for a viewport width in pixels.
func Classify(pixels int) Breakpoint {
	switch {
	case pixels <= MobileSMMax:
		return MobileSM
	case pixels <= MobileLGMax:
		return MobileLG
	case pixels <= TabletMax:
		return Tablet
	default:
		return Desktop
	}
}

// ClassifyColumns returns the breakpoint for a terminal width in columns.
func ClassifyColumns(cols int) Breakpoint {
	return Classify(cols * CellWidth)
}

// String returns a human-readable tier name.
func (b Breakpoint) String() string {
	switch b {
	case MobileSM:
		return "mobile-sm"
	case MobileLG:
		return "mobile-lg"
	case Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

// ShowSessionSidebar reports whether the recent-sessions sidebar fits.
func (b Breakpoint) ShowSessionSidebar() bool {
	return b >= Desktop
}

// ShowQuickActions reports whether the quick-actions sidebar fits.
func (b Breakpoint) ShowQuickActions() bool {
	return b >= Tablet
}

// Compact reports whether bubbles should drop padding and timestamps.
func (b Breakpoint) Compact() bool {
	return b == MobileSM
}

// BubbleWidthFor returns the maximum bubble width in columns for a given
// transcript width. Narrow tiers use the full width; wider tiers cap
// bubbles at roughly two thirds so user and bot bubbles stay visually
// separated.
func (b Breakpoint) BubbleWidthFor(cols int) int {
	if b <= MobileLG {
		return cols
	}
	w := cols * 2 / 3
	if w < 20 {
		w = cols
	}
	return w
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER / STATUS
	// ==========================================================================

	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderUser  lipgloss.Style
	StatusBar   lipgloss.Style
	Shortcut    lipgloss.Style
	ShortcutKey lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLES
	// ==========================================================================

	UserBubble   lipgloss.Style
	BotBubble    lipgloss.Style
	SystemBubble lipgloss.Style
	Timestamp    lipgloss.Style

	// ==========================================================================
	// INPUT AREA
	// ==========================================================================

	InputContainer   lipgloss.Style
	InputPlaceholder lipgloss.Style
	CharCount        lipgloss.Style
	CharCountDanger  lipgloss.Style

	// ==========================================================================
	// SIDEBARS
	// ==========================================================================

	Sidebar         lipgloss.Style
	SidebarTitle    lipgloss.Style
	SidebarItem     lipgloss.Style
	SidebarSelected lipgloss.Style

	// ==========================================================================
	// PRODUCT DISPLAY
	// ==========================================================================

	ProductCard     lipgloss.Style
	ProductName     lipgloss.Style
	ProductBrand    lipgloss.Style
	ProductPrice    lipgloss.Style
	ProductStars    lipgloss.Style
	ProductStockIn  lipgloss.Style
	ProductStockLow lipgloss.Style
	ProductStockOut lipgloss.Style

	// ==========================================================================
	// MODALS
	// ==========================================================================

	ModalBox    lipgloss.Style
	ModalTitle  lipgloss.Style
	ModalDimmed lipgloss.Style

	// ==========================================================================
	// AUTH FORM
	// ==========================================================================

	FormBox    lipgloss.Style
	FormLabel  lipgloss.Style
	FormError  lipgloss.Style
	FormActive lipgloss.Style
}

// New creates a Theme for the given theme name ("dark", "light", "auto").
// "auto" keeps the terminal's detected background; anything else forces it.
func New(name string) *Theme {
	colorProfile := termenv.ColorProfile()

	isDark := termenv.HasDarkBackground()
	switch name {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.build()
	return t
}

// build populates all styles from the palette.
func (t *Theme) build() {
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextPrimary).
		Padding(0, 1)
	t.HeaderBrand = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.HeaderUser = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.Shortcut = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.UserBubble = lipgloss.NewStyle().
		Background(UserBubbleBg).
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)
	t.BotBubble = lipgloss.NewStyle().
		Background(BotBubbleBg).
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1)
	t.SystemBubble = lipgloss.NewStyle().
		Background(SystemBubbleBg).
		Foreground(SystemBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(SystemBubbleBorder).
		Padding(0, 1)
	t.Timestamp = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.InputPlaceholder = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.CharCount = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.CharCountDanger = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.SidebarTitle = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)
	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.SidebarSelected = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo)

	t.ProductCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.ProductName = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)
	t.ProductBrand = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.ProductPrice = lipgloss.NewStyle().
		Foreground(Price).
		Bold(true)
	t.ProductStars = lipgloss.NewStyle().
		Foreground(Stars)
	t.ProductStockIn = lipgloss.NewStyle().
		Foreground(StockIn)
	t.ProductStockLow = lipgloss.NewStyle().
		Foreground(StockLow)
	t.ProductStockOut = lipgloss.NewStyle().
		Foreground(StockOut)

	t.ModalBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Indigo).
		Background(Surface).
		Padding(1, 2)
	t.ModalTitle = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true)
	t.ModalDimmed = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.FormBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 2)
	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.FormError = lipgloss.NewStyle().
		Foreground(Rose)
	t.FormActive = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
}

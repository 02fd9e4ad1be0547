// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopbot-tui/internal/model"
	"github.com/jeranaias/shopbot-tui/internal/ui/styles"
	"github.com/jeranaias/shopbot-tui/internal/util"
)

// =============================================================================
// PRODUCT RENDERING
// =============================================================================

// Stock thresholds for the availability badge.
const lowStockMax = 5

// StockLabel returns the availability text for a product.
func StockLabel(p *model.Product) string {
	switch {
	case p.StockQuantity <= 0:
		return "Out of stock"
	case p.StockQuantity <= lowStockMax:
		return fmt.Sprintf("Only %d left", p.StockQuantity)
	default:
		return "In stock"
	}
}

// stockStyle picks the style matching the availability tier.
func stockStyle(theme *styles.Theme, p *model.Product) lipgloss.Style {
	switch {
	case p.StockQuantity <= 0:
		return theme.ProductStockOut
	case p.StockQuantity <= lowStockMax:
		return theme.ProductStockLow
	default:
		return theme.ProductStockIn
	}
}

// RenderProductCard renders a compact card for the recommendation panel.
func RenderProductCard(theme *styles.Theme, p *model.Product, width int, selected bool) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	name := theme.ProductName.Render(util.TruncateWidth(p.Name, inner))
	brand := theme.ProductBrand.Render(util.TruncateWidth(p.DisplayBrand(), inner))
	price := theme.ProductPrice.Render(p.FormatPrice())
	stars := theme.ProductStars.Render(p.Stars())
	stock := stockStyle(theme, p).Render(StockLabel(p))

	body := lipgloss.JoinVertical(lipgloss.Left,
		name,
		brand,
		price+"  "+stars,
		stock,
	)

	card := theme.ProductCard.Width(width)
	if selected {
		card = card.BorderForeground(styles.Indigo)
	}
	return card.Render(body)
}

// RenderProductPanel renders the full recommendation list, one card per
// product, with a highlighted selection.
func RenderProductPanel(theme *styles.Theme, products []model.Product, width, selected int) string {
	if len(products) == 0 {
		return ""
	}

	title := theme.SidebarTitle.Render(fmt.Sprintf("Products (%d)", len(products)))
	parts := make([]string, 0, len(products)+1)
	parts = append(parts, title)
	for i := range products {
		parts = append(parts, RenderProductCard(theme, &products[i], width, i == selected))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// ProductDetail builds the content for the product detail modal.
func ProductDetail(theme *styles.Theme, p *model.Product, width int) string {
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(theme.ProductBrand.Render(p.DisplayBrand()))
	b.WriteString("\n\n")
	b.WriteString(theme.ProductPrice.Render(p.FormatPrice()))
	b.WriteString("   ")
	b.WriteString(theme.ProductStars.Render(p.Stars()))
	b.WriteString(" (" + util.FloatToStringPrec(p.Rating, 1) + ")")
	b.WriteString("\n")
	b.WriteString(stockStyle(theme, p).Render(StockLabel(p)))
	b.WriteString("\n\n")

	desc := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Width(width).
		Render(p.DisplayDescription())
	b.WriteString(desc)

	if attrs := p.DisplayAttributes(); len(attrs) > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.SidebarTitle.Render("Details"))
		for _, attr := range attrs {
			b.WriteString("\n  ")
			b.WriteString(theme.FormLabel.Render(attr.Name + ": "))
			b.WriteString(attr.Value)
		}
	}
	return b.String()
}

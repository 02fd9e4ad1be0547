// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/jeranaias/shopbot-tui/internal/model"
	"github.com/jeranaias/shopbot-tui/internal/ui/styles"
)

func testProduct() model.Product {
	return model.Product{
		ID:            1,
		Name:          "UltraBook Pro 15",
		Price:         1299.00,
		Rating:        4.5,
		Brand:         "TechCorp",
		StockQuantity: 12,
		Description:   "A fast, light laptop.",
	}
}

func TestStockLabel(t *testing.T) {
	tests := []struct {
		name  string
		stock int
		want  string
	}{
		{"in stock", 12, "In stock"},
		{"low stock", 3, "Only 3 left"},
		{"boundary low", 5, "Only 5 left"},
		{"out of stock", 0, "Out of stock"},
		{"negative treated as out", -1, "Out of stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProduct()
			p.StockQuantity = tt.stock
			if got := StockLabel(&p); got != tt.want {
				t.Errorf("StockLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderProductCard(t *testing.T) {
	theme := styles.New("dark")
	p := testProduct()

	out := RenderProductCard(theme, &p, 40, false)
	for _, want := range []string{"UltraBook Pro 15", "TechCorp", "$1,299.00", "In stock"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
}

func TestRenderProductPanelEmpty(t *testing.T) {
	theme := styles.New("dark")
	if out := RenderProductPanel(theme, nil, 40, 0); out != "" {
		t.Errorf("empty panel rendered %q, want empty string", out)
	}
}

func TestProductDetailFallbacks(t *testing.T) {
	theme := styles.New("dark")
	p := testProduct()
	p.Brand = ""
	p.Description = ""
	p.Attributes = map[string]string{"screen_size": "15.6 inch"}

	out := ProductDetail(theme, &p, 50)
	if !strings.Contains(out, "Generic") {
		t.Error("detail missing brand fallback")
	}
	if !strings.Contains(out, "Screen Size") {
		t.Error("detail missing prettified attribute name")
	}
	if !strings.Contains(out, "15.6 inch") {
		t.Error("detail missing attribute value")
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and products.
package model

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// =============================================================================
// PRODUCT TYPE
// =============================================================================

// Product is a single product returned by the backend recommendation engine.
// Products are held only while displayed and are never persisted locally.
type Product struct {
	ID            int               `json:"id"`
	Name          string            `json:"name"`
	Price         float64           `json:"price"`
	Rating        float64           `json:"rating"`
	Brand         string            `json:"brand,omitempty"`
	StockQuantity int               `json:"stock_quantity"`
	Description   string            `json:"description,omitempty"`
	ImageURL      string            `json:"image_url,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// pricePrinter formats prices as en-US currency values.
var pricePrinter = message.NewPrinter(language.AmericanEnglish)

// FormatPrice returns the price as an en-US currency string, always with
// two fraction digits (e.g. "$1,299.00").
func (p *Product) FormatPrice() string {
	return pricePrinter.Sprintf("$%v", number.Decimal(p.Price,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// DisplayBrand returns the brand, or "Generic" when the backend omitted it.
func (p *Product) DisplayBrand() string {
	if p.Brand == "" {
		return "Generic"
	}
	return p.Brand
}

// DisplayDescription returns the description or a fixed fallback.
func (p *Product) DisplayDescription() string {
	if p.Description == "" {
		return "No description available."
	}
	return p.Description
}

// Stars renders the rating as five star glyphs. The filled count is always
// floor(rating); ratings are never rounded up.
func (p *Product) Stars() string {
	filled := int(p.Rating)
	if filled < 0 {
		filled = 0
	}
	if filled > 5 {
		filled = 5
	}
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}

// placeholderImageURL is the backend's "no real image" placeholder for a
// product. The URL embeds the product name with spaces replaced by '+'.
func (p *Product) placeholderImageURL() string {
	return "https://via.placeholder.com/300x300?text=" + strings.ReplaceAll(p.Name, " ", "+")
}

// HasRealImage reports whether the product carries a real image URL rather
// than the recognized placeholder value.
func (p *Product) HasRealImage() bool {
	return p.ImageURL != "" && p.ImageURL != p.placeholderImageURL()
}

// Attribute is a display-ready product attribute.
type Attribute struct {
	Name  string
	Value string
}

// DisplayAttributes returns the attribute map as a sorted list with
// prettified names: underscores become spaces and each word is capitalized
// ("screen_size" -> "Screen Size").
func (p *Product) DisplayAttributes() []Attribute {
	if len(p.Attributes) == 0 {
		return nil
	}

	attrs := make([]Attribute, 0, len(p.Attributes))
	for k, v := range p.Attributes {
		attrs = append(attrs, Attribute{Name: prettifyKey(k), Value: v})
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
	return attrs
}

// prettifyKey converts "screen_size" to "Screen Size". Only the first letter
// of each word is upcased; the rest of the word is left untouched so acronym
// values like "RAM_type" keep their casing.
func prettifyKey(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(w)
		words[i] = strings.ToUpper(string(runes[0])) + string(runes[1:])
	}
	return strings.Join(words, " ")
}

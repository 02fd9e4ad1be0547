// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup implements the constrained text-to-markup transform applied
// to bot responses.
//
// The grammar is fixed and deliberately small. In order:
//
//  1. **text**            -> bold
//  2. *text*              -> italic
//  3. lines "- item"      -> list item
//  4. lines "N. item"     -> numbered list item (the number stays in the text)
//  5. remaining newlines  -> line breaks
//
// Any contiguous run of list items forms a list, but only the FIRST run is
// wrapped in a list container. This narrowing is intentional parity with the
// behavior the product currently ships; see DESIGN.md before changing it.
// Unmatched syntax passes through literally.
package markup

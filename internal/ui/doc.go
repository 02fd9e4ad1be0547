// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the Bubble Tea application for the shopbot TUI:
// the login/register view, the chat view with its transcript, product
// panel and sidebars, and the root model that routes between them.
//
// Keyboard shortcuts and slash commands never mutate state directly.
// Both surfaces emit the intent messages defined in internal/commands, so
// a chord and its command alias always take the same code path.
package ui

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the shopbot TUI:
// toast notifications, the modal stack, typing spinner, responsive
// breakpoints, and product rendering.
package components

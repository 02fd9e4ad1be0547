// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat coordinates the active conversation.
//
// The Coordinator owns the in-memory transcript and enforces the
// one-request-in-flight rule: while a send is pending, further sends are
// rejected without touching the network or the history. Completed exchanges
// are append-only and chronological; a failed send never reaches the
// transcript.
package chat

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable client-side state for shopbot-tui.
//
// Four values survive restarts: the access token, the user record, the auth
// session id, and the unsent draft message. They live in a single JSON
// document (default ~/.shopbot/state.json) written atomically with fsync.
//
// The auth session is all-or-nothing: a partially populated stored session
// (say a token without a user record) is treated as absent and discarded on
// load. Products and transcripts are never persisted here.
package storage

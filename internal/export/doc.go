// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes chat transcripts to files.
//
// The canonical artifact is JSON: {session_id, timestamp, user, messages[]},
// one messages entry per completed exchange, saved as
// chat-export-YYYY-MM-DD.json. Markdown and HTML renditions of the same
// artifact are available for sharing.
package export

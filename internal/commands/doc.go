// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash command system for the TUI.
//
// Commands are pure dispatch: each handler returns a tea.Cmd that emits an
// intent message, and the application model reacts to the message. Handlers
// never mutate state themselves, so the same intents can be raised by key
// chords, slash commands, or sidebar selections interchangeably.
package commands

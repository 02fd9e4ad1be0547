// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface of shopbot: argument
// parsing, the interactive login prompt, a plain-terminal chat REPL, and
// the config subcommand.
package cli

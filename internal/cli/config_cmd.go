// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/jeranaias/shopbot-tui/internal/config"
	"github.com/jeranaias/shopbot-tui/internal/util"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// HandleConfig implements "shopbot config [show|path|set <key> <value>]".
func HandleConfig(args []string) error {
	parser := NewArgParser(args)

	switch parser.Subcommand() {
	case "", "show":
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		printConfig(cfg)
		return nil

	case "path":
		path, err := config.Path()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil

	case "set":
		rest := parser.Positional()
		if len(rest) != 2 {
			return fmt.Errorf("usage: shopbot config set <key> <value>")
		}
		return setConfigKey(rest[0], rest[1])

	default:
		return fmt.Errorf("unknown config subcommand %q", parser.Subcommand())
	}
}

// printConfig writes the effective configuration, secrets redacted.
func printConfig(cfg *config.Config) {
	fmt.Println("server:")
	fmt.Println("  base_url:        " + cfg.Server.BaseURL)
	fmt.Println("  timeout_secs:    " + util.IntToString(cfg.Server.TimeoutSecs))
	token := "(not set)"
	if cfg.Server.AccessToken != "" {
		token = "(set, redacted)"
	}
	fmt.Println("  access_token:    " + token)
	fmt.Println("chat:")
	fmt.Println("  max_input_chars: " + util.IntToString(cfg.Chat.MaxInputChars))
	fmt.Printf("  draft_autosave:  %t\n", cfg.Chat.DraftAutosave)
	fmt.Println("export:")
	fmt.Println("  dir:             " + cfg.Export.Dir)
	fmt.Println("ui:")
	fmt.Println("  theme:           " + cfg.UI.Theme)
	fmt.Printf("  quick_actions:   %t\n", cfg.UI.ShowQuickActions)
	fmt.Printf("  sessions:        %t\n", cfg.UI.ShowSessions)
}

// setConfigKey updates one settable key and saves the file.
func setConfigKey(key, value string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch key {
	case "server.base_url":
		cfg.Server.BaseURL = value
	case "ui.theme":
		cfg.UI.Theme = value
	case "export.dir":
		cfg.Export.Dir = value
	default:
		return fmt.Errorf("unknown or read-only key %q", key)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("Set %s = %s\n", key, value)
	return nil
}

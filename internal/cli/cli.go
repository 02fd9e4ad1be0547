// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdRegister
	CmdLogout
	CmdChat
	CmdConfig
	CmdVersion
	CmdHelp
)

const usageText = `shopbot - terminal client for the ShopBot shopping assistant

Usage:
  shopbot                    Start the TUI (default)
  shopbot login              Sign in and store the session
  shopbot register           Create an account
  shopbot logout             Sign out and clear the stored session
  shopbot chat               Plain-terminal chat (no TUI)
  shopbot config [show|path|set <key> <value>]
  shopbot version            Show version information
  shopbot help               Show this help

Environment:
  SHOPBOT_SERVER_URL         Override the backend URL
  SHOPBOT_ACCESS_TOKEN       Use a pre-issued bearer token
  SHOPBOT_THEME              Force "dark" or "light"
`

// Parse maps os.Args to a command and its remaining arguments.
func Parse() (Command, []string) {
	args := os.Args[1:]
	if len(args) == 0 {
		return CmdTUI, nil
	}

	switch args[0] {
	case "login":
		return CmdLogin, args[1:]
	case "register":
		return CmdRegister, args[1:]
	case "logout":
		return CmdLogout, args[1:]
	case "chat":
		return CmdChat, args[1:]
	case "config":
		return CmdConfig, args[1:]
	case "version", "-v", "--version":
		return CmdVersion, args[1:]
	case "help", "-h", "--help":
		return CmdHelp, args[1:]
	default:
		// Unknown subcommands fall through to help rather than the TUI,
		// so typos do not silently open the full interface.
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
		return CmdHelp, nil
	}
}

// HandleHelp prints the usage text.
func HandleHelp() {
	fmt.Print(usageText)
}

// HandleVersion prints build information.
func HandleVersion() {
	fmt.Printf("shopbot %s\n", Version)
	fmt.Printf("  commit:  %s\n", GitCommit)
	fmt.Printf("  built:   %s\n", BuildDate)
	fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

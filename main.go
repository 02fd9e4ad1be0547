// shopbot - a terminal client for the ShopBot shopping assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopbot-tui/internal/api"
	"github.com/jeranaias/shopbot-tui/internal/auth"
	"github.com/jeranaias/shopbot-tui/internal/chat"
	"github.com/jeranaias/shopbot-tui/internal/cli"
	"github.com/jeranaias/shopbot-tui/internal/config"
	"github.com/jeranaias/shopbot-tui/internal/storage"
	"github.com/jeranaias/shopbot-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdHelp:
		cli.HandleHelp()
		return
	case cli.CmdVersion:
		cli.HandleVersion()
		return
	case cli.CmdConfig:
		if err := cli.HandleConfig(args); err != nil {
			cli.Fail(err)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		cli.Fail(err)
	}

	logger := openLogger()

	store, err := storage.NewStateStore()
	if err != nil {
		cli.Fail(err)
	}

	client := api.NewClient(cfg.Server.BaseURL).
		WithTimeout(time.Duration(cfg.Server.TimeoutSecs) * time.Second)

	authc := auth.NewCoordinator(client, store).WithLogger(logger)
	if cfg.Server.AccessToken != "" && !authc.IsAuthenticated() {
		authc.AdoptToken(cfg.Server.AccessToken)
	}

	chatc := chat.NewCoordinator(client, authc).
		WithLogger(logger).
		WithMaxInput(cfg.Chat.MaxInputChars)

	switch cmd {
	case cli.CmdLogin:
		if err := cli.HandleLogin(authc); err != nil {
			cli.Fail(err)
		}
	case cli.CmdRegister:
		if err := cli.HandleRegister(authc); err != nil {
			cli.Fail(err)
		}
	case cli.CmdLogout:
		cli.HandleLogout(authc)
	case cli.CmdChat:
		requireAuth(authc)
		if err := cli.HandleChat(chatc, cfg.Export.Dir); err != nil {
			cli.Fail(err)
		}
	default:
		runTUI(cfg, authc, chatc, store, logger)
	}
}

// runTUI starts the full-screen interface with config hot reload.
func runTUI(cfg *config.Config, authc *auth.Coordinator, chatc *chat.Coordinator, store *storage.StateStore, logger *log.Logger) {
	app := ui.NewApp(cfg, authc, chatc, store)
	program := tea.NewProgram(app, tea.WithAltScreen())

	watcher := startConfigWatcher(cfg, program, logger)
	if watcher != nil {
		defer watcher.Close()
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// startConfigWatcher reloads the config file on change and notifies the
// running program. Returns nil when watching cannot be set up; the TUI
// still runs with the startup config.
func startConfigWatcher(cfg *config.Config, program *tea.Program, logger *log.Logger) *config.Watcher {
	path, err := config.Path()
	if err != nil {
		return nil
	}

	watcher, err := config.NewWatcher(path, func(next *config.Config) {
		*cfg = *next.Clone()
		program.Send(ui.ConfigReloadedMsg{})
	})
	if err != nil {
		logger.Printf("config watch disabled: %v", err)
		return nil
	}
	if err := watcher.Watch(); err != nil {
		logger.Printf("config watch disabled: %v", err)
		return nil
	}
	return watcher
}

// requireAuth exits with a hint when no session is stored.
func requireAuth(authc *auth.Coordinator) {
	if !authc.IsAuthenticated() {
		fmt.Fprintln(os.Stderr, "Not signed in. Run `shopbot login` first.")
		os.Exit(1)
	}
}

// openLogger writes to ~/.shopbot/shopbot.log, or discards when the
// directory is unavailable.
func openLogger() *log.Logger {
	var sink io.Writer = io.Discard

	dir, err := config.Dir()
	if err == nil && config.EnsureDir() == nil {
		if f, ferr := os.OpenFile(filepath.Join(dir, "shopbot.log"),
			os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600); ferr == nil {
			sink = f
		}
	}

	// The api package logs through the default logger; send that to the
	// same sink so nothing writes over the TUI.
	log.SetOutput(sink)
	return log.New(sink, "", log.LstdFlags)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/peterh/liner"

	"github.com/jeranaias/shopbot-tui/internal/chat"
	"github.com/jeranaias/shopbot-tui/internal/markup"
	"github.com/jeranaias/shopbot-tui/internal/model"
)

const sendTimeout = 90 * time.Second

// =============================================================================
// PLAIN-TERMINAL CHAT
// =============================================================================

// HandleChat runs the line-based chat loop for terminals where the full
// TUI is unwanted (ssh sessions, scripts around expect, narrow panes).
func HandleChat(coordinator *chat.Coordinator, exportDir string) error {
	if !IsInteractive() {
		return fmt.Errorf("chat requires an interactive terminal")
	}

	prompt := NewPrompt()
	defer prompt.Close()

	renderer := markup.Renderer{Bullet: "  • ", Indent: "  "}

	fmt.Println("ShopBot chat. /new starts over, /export saves, /quit leaves.")
	for {
		input, err := prompt.ReadLine("you> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, "/") {
			if quit := runReplCommand(coordinator, renderer, input, exportDir); quit {
				return nil
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		exchange, err := coordinator.Send(ctx, input)
		cancel()
		if err != nil {
			fmt.Println("bot> " + chat.BotReply(err))
			continue
		}

		fmt.Println("bot> " + renderer.Render(exchange.BotResponse))
		printProducts(exchange.Products)
	}
}

// runReplCommand handles slash commands. Returns true to exit the loop.
func runReplCommand(coordinator *chat.Coordinator, renderer markup.Renderer, input, exportDir string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/quit", "/q", "/exit":
		return true

	case "/new", "/clear":
		coordinator.Clear()
		fmt.Println("Started a new chat.")

	case "/export", "/e":
		format := "json"
		if len(fields) > 1 {
			format = fields[1]
		}
		path, err := coordinator.ExportAs(exportDir, format)
		if err != nil {
			fmt.Println("Export failed: " + err.Error())
		} else {
			fmt.Println("Exported to " + path)
		}

	case "/load", "/l":
		if len(fields) < 2 {
			fmt.Println("Usage: /load <session-id>")
			return false
		}
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := coordinator.LoadSession(ctx, fields[1])
		cancel()
		if err != nil {
			fmt.Println("Could not load session: " + err.Error())
			return false
		}
		for _, ex := range coordinator.Exchanges() {
			fmt.Println("you> " + ex.UserMessage)
			fmt.Println("bot> " + renderer.Render(ex.BotResponse))
		}

	case "/sessions", "/list":
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		sessions, err := coordinator.RecentSessions(ctx)
		cancel()
		if err != nil {
			fmt.Println("Could not load sessions: " + err.Error())
			return false
		}
		if len(sessions) == 0 {
			fmt.Println("No saved conversations.")
			return false
		}
		for _, s := range sessions {
			fmt.Printf("  %s  %s\n", s.SessionID, s.Title())
		}

	case "/help", "/h", "/?":
		fmt.Println("Commands: /new /export [json|md|html] /load <id> /sessions /quit")

	default:
		fmt.Printf("Unknown command %s (try /help)\n", fields[0])
	}
	return false
}

// printProducts lists recommended products under a bot reply.
func printProducts(products []model.Product) {
	if len(products) == 0 {
		return
	}
	fmt.Println("     Products:")
	for i := range products {
		p := &products[i]
		fmt.Printf("     - %s (%s) %s %s\n",
			p.Name, p.DisplayBrand(), p.FormatPrice(), p.Stars())
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help and completion
	Description string

	// Usage shows argument syntax (e.g., "/load <session_id>")
	Usage string

	// Handler is the function that executes the command
	Handler func(ctx *HandlerContext, args []string) tea.Cmd

	// Category for grouping in help display
	Category string
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// ByCategory returns commands grouped by category.
func (r *Registry) ByCategory() map[string][]*Command {
	result := make(map[string][]*Command)
	for _, cmd := range r.All() {
		category := cmd.Category
		if category == "" {
			category = "General"
		}
		result[category] = append(result[category], cmd)
	}
	return result
}

// Complete returns command names and aliases matching the given prefix.
func (r *Registry) Complete(prefix string) []string {
	var matches []string
	for name := range r.commands {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	for alias := range r.aliases {
		if strings.HasPrefix(alias, prefix) {
			matches = append(matches, alias)
		}
	}
	sort.Strings(matches)
	return matches
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	// Navigation
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show help and available commands",
		Category:    "Navigation",
		Handler:     handleHelp,
	})

	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "Exit shopbot",
		Category:    "Navigation",
		Handler:     handleQuit,
	})

	// Conversation
	r.Register(&Command{
		Name:        "/new",
		Aliases:     []string{"/n", "/clear"},
		Description: "Start a new conversation (discards the current one)",
		Category:    "Conversation",
		Handler:     handleNew,
	})

	r.Register(&Command{
		Name:        "/export",
		Aliases:     []string{"/e"},
		Description: "Export the conversation to a file",
		Usage:       "/export [json|md|html]",
		Category:    "Conversation",
		Handler:     handleExport,
	})

	r.Register(&Command{
		Name:        "/load",
		Aliases:     []string{"/l", "/resume"},
		Description: "Load a stored conversation",
		Usage:       "/load <session_id>",
		Category:    "Conversation",
		Handler:     handleLoad,
	})

	r.Register(&Command{
		Name:        "/sessions",
		Aliases:     []string{"/list"},
		Description: "List recent conversations",
		Category:    "Conversation",
		Handler:     handleSessions,
	})

	r.Register(&Command{
		Name:        "/history",
		Aliases:     []string{"/stats"},
		Description: "Show how many messages the server has stored for you",
		Category:    "Conversation",
		Handler:     handleHistory,
	})

	// Account
	r.Register(&Command{
		Name:        "/logout",
		Description: "Log out and return to the login screen",
		Category:    "Account",
		Handler:     handleLogout,
	})

	// Settings
	r.Register(&Command{
		Name:        "/theme",
		Description: "Change color theme",
		Usage:       "/theme <dark|light>",
		Category:    "Settings",
		Handler:     handleTheme,
	})
}

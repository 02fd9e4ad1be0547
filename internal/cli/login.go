// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jeranaias/shopbot-tui/internal/auth"
)

const authTimeout = 30 * time.Second

// =============================================================================
// LOGIN / REGISTER / LOGOUT
// =============================================================================

// HandleLogin signs the user in interactively and stores the session.
func HandleLogin(coordinator *auth.Coordinator) error {
	if !IsInteractive() {
		return fmt.Errorf("login requires an interactive terminal")
	}

	prompt := NewPrompt()
	defer prompt.Close()

	username, err := prompt.ReadLine("Username: ")
	if err != nil {
		return err
	}
	password, err := ReadPassword("Password: ")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()
	user, err := coordinator.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("Signed in as %s.\n", user.Username)
	return nil
}

// HandleRegister creates an account interactively and stores the session.
func HandleRegister(coordinator *auth.Coordinator) error {
	if !IsInteractive() {
		return fmt.Errorf("register requires an interactive terminal")
	}

	prompt := NewPrompt()
	defer prompt.Close()

	username, err := prompt.ReadLine("Username: ")
	if err != nil {
		return err
	}
	email, err := prompt.ReadLine("Email: ")
	if err != nil {
		return err
	}
	password, err := ReadPassword("Password: ")
	if err != nil {
		return err
	}
	confirm, err := ReadPassword("Confirm password: ")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()
	user, err := coordinator.Register(ctx, username, email, password, confirm)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Account created. Signed in as %s.\n", user.Username)
	return nil
}

// HandleLogout clears the stored session. Server-side failures are not
// reported; the local session is always cleared.
func HandleLogout(coordinator *auth.Coordinator) {
	if !coordinator.IsAuthenticated() {
		fmt.Println("Not signed in.")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), authTimeout)
	defer cancel()
	coordinator.Logout(ctx)
	fmt.Println("Signed out.")
}

// Fail prints an error and exits non-zero.
func Fail(err error) {
	fmt.Fprintln(os.Stderr, "error: "+strings.TrimSpace(err.Error()))
	os.Exit(1)
}

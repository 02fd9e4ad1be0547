// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopbot-tui/internal/api"
	"github.com/jeranaias/shopbot-tui/internal/auth"
	"github.com/jeranaias/shopbot-tui/internal/ui/styles"
)

// =============================================================================
// AUTH VIEW
// =============================================================================

// authMode selects which form the auth view is showing.
type authMode int

const (
	modeLogin authMode = iota
	modeRegister
)

// Form field indices. Login uses username and password only.
const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
	fieldConfirm
)

const authRequestTimeout = 30 * time.Second

// authView is the login/register form.
type authView struct {
	coordinator *auth.Coordinator

	mode       authMode
	inputs     []textinput.Model
	focus      int
	submitting bool
	errText    string

	width  int
	height int
}

// newAuthView builds the form with all four inputs prepared.
func newAuthView(coordinator *auth.Coordinator) authView {
	inputs := make([]textinput.Model, 4)

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()
	inputs[fieldUsername] = username

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	inputs[fieldPassword] = password

	confirm := textinput.New()
	confirm.Placeholder = "confirm password"
	confirm.CharLimit = 128
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'
	inputs[fieldConfirm] = confirm

	return authView{
		coordinator: coordinator,
		mode:        modeLogin,
		inputs:      inputs,
	}
}

// fields returns the field indices active in the current mode.
func (v *authView) fields() []int {
	if v.mode == modeRegister {
		return []int{fieldUsername, fieldEmail, fieldPassword, fieldConfirm}
	}
	return []int{fieldUsername, fieldPassword}
}

// setFocus moves focus to the field at position pos within fields().
func (v *authView) setFocus(pos int) {
	active := v.fields()
	if pos < 0 {
		pos = len(active) - 1
	}
	if pos >= len(active) {
		pos = 0
	}
	v.focus = pos
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
	v.inputs[active[pos]].Focus()
}

// toggleMode switches between login and register, clearing transient state.
func (v *authView) toggleMode() {
	if v.mode == modeLogin {
		v.mode = modeRegister
	} else {
		v.mode = modeLogin
	}
	v.errText = ""
	for i := range v.inputs {
		v.inputs[i].SetValue("")
	}
	v.setFocus(0)
}

// submit kicks off the login or register request.
func (v *authView) submit() tea.Cmd {
	if v.submitting {
		return nil
	}
	v.submitting = true
	v.errText = ""

	coordinator := v.coordinator
	username := v.inputs[fieldUsername].Value()
	email := v.inputs[fieldEmail].Value()
	password := v.inputs[fieldPassword].Value()
	confirm := v.inputs[fieldConfirm].Value()

	if v.mode == modeRegister {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), authRequestTimeout)
			defer cancel()
			user, err := coordinator.Register(ctx, username, email, password, confirm)
			return RegisterResultMsg{User: user, Err: err}
		}
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), authRequestTimeout)
		defer cancel()
		user, err := coordinator.Login(ctx, username, password)
		return LoginResultMsg{User: user, Err: err}
	}
}

// Update handles key input and async results for the auth view.
func (v authView) Update(msg tea.Msg) (authView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.submitting {
			return v, nil
		}
		switch msg.String() {
		case "tab", "down":
			v.setFocus(v.focus + 1)
			return v, nil
		case "shift+tab", "up":
			v.setFocus(v.focus - 1)
			return v, nil
		case "enter":
			return v, v.submit()
		case "ctrl+t":
			v.toggleMode()
			return v, nil
		}

	case LoginResultMsg:
		v.submitting = false
		if msg.Err != nil {
			v.errText = authErrorText(msg.Err)
		}
		return v, nil

	case RegisterResultMsg:
		v.submitting = false
		if msg.Err != nil {
			v.errText = authErrorText(msg.Err)
		}
		return v, nil
	}

	// Route everything else to the focused input.
	active := v.fields()
	idx := active[v.focus]
	var cmd tea.Cmd
	v.inputs[idx], cmd = v.inputs[idx].Update(msg)
	return v, cmd
}

// authErrorText maps auth errors to form-level messages. Server rejections
// surface the backend's error string verbatim.
func authErrorText(err error) string {
	switch err {
	case auth.ErrMissingCredentials:
		return "Please enter a username and password."
	case auth.ErrMissingFields:
		return "Please fill in all fields."
	case auth.ErrPasswordMismatch:
		return "Passwords do not match."
	case auth.ErrPasswordTooShort:
		return "Password must be at least 6 characters."
	}
	if apiErr, ok := api.AsAPIError(err); ok {
		return apiErr.UserMessage("Authentication failed. Please try again.")
	}
	if errors.Is(err, api.ErrAuthRequired) {
		// The client wraps the server's error string after the sentinel.
		if _, msg, ok := strings.Cut(err.Error(), ": "); ok && msg != "" {
			return msg
		}
		return "Invalid username or password."
	}
	return "Could not reach the server. Check your connection."
}

// View renders the centered form.
func (v authView) View(theme *styles.Theme) string {
	title := "Sign in to ShopBot"
	switchHint := "ctrl+t to create an account"
	if v.mode == modeRegister {
		title = "Create a ShopBot account"
		switchHint = "ctrl+t to sign in instead"
	}

	var rows []string
	rows = append(rows, theme.ModalTitle.Render(title), "")

	labels := map[int]string{
		fieldUsername: "Username",
		fieldEmail:    "Email",
		fieldPassword: "Password",
		fieldConfirm:  "Confirm",
	}
	for pos, idx := range v.fields() {
		label := theme.FormLabel.Render(labels[idx])
		if pos == v.focus {
			label = theme.FormActive.Render(labels[idx])
		}
		rows = append(rows, label, v.inputs[idx].View(), "")
	}

	if v.errText != "" {
		rows = append(rows, theme.FormError.Render(v.errText), "")
	}
	if v.submitting {
		rows = append(rows, theme.ModalDimmed.Render("Signing in..."), "")
	}
	rows = append(rows,
		theme.ModalDimmed.Render("enter to submit · tab to move · "+switchHint))

	form := theme.FormBox.Width(44).Render(
		lipgloss.JoinVertical(lipgloss.Left, rows...))

	if v.width <= 0 || v.height <= 0 {
		return form
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, form)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopbot-tui/internal/api"
	"github.com/jeranaias/shopbot-tui/internal/chat"
	"github.com/jeranaias/shopbot-tui/internal/markup"
	"github.com/jeranaias/shopbot-tui/internal/model"
	"github.com/jeranaias/shopbot-tui/internal/storage"
	"github.com/jeranaias/shopbot-tui/internal/ui/components"
	"github.com/jeranaias/shopbot-tui/internal/ui/styles"
	"github.com/jeranaias/shopbot-tui/internal/util"
)

// =============================================================================
// CHAT VIEW
// =============================================================================

const sendTimeout = 90 * time.Second

// Char counter thresholds as a fraction of the limit.
const charWarnRatio = 0.8

// chatView renders the transcript, input area, sidebars and product panel.
type chatView struct {
	coordinator *chat.Coordinator
	store       *storage.StateStore
	theme       *styles.Theme

	viewport viewport.Model
	input    textarea.Model
	typing   components.TypingIndicator

	sessions     []api.SessionSummary
	quickActions []api.QuickAction
	qaIndex      int // next quick action tab inserts
	products     []model.Product
	selected     int // selected product index
	errReply     string
	pending      string // optimistic echo of the in-flight message

	width      int
	height     int
	breakpoint components.Breakpoint
	maxInput   int
	ready      bool
}

// newChatView builds the chat surface. maxInput caps the textarea.
func newChatView(coordinator *chat.Coordinator, store *storage.StateStore, theme *styles.Theme, maxInput int) chatView {
	input := textarea.New()
	input.Placeholder = "Ask ShopBot about products..."
	input.CharLimit = maxInput
	input.SetHeight(3)
	input.ShowLineNumbers = false
	input.Focus()

	return chatView{
		coordinator: coordinator,
		store:       store,
		theme:       theme,
		input:       input,
		typing:      components.NewTypingIndicator(),
		maxInput:    maxInput,
	}
}

// =============================================================================
// LAYOUT
// =============================================================================

// resize recalculates the layout for a new terminal size.
func (v *chatView) resize(width, height int) {
	v.width = width
	v.height = height
	v.breakpoint = components.ClassifyColumns(width)

	transcriptWidth := v.transcriptWidth()
	// Header, input box and status bar take the vertical margins.
	transcriptHeight := height - v.input.Height() - 6
	if transcriptHeight < 3 {
		transcriptHeight = 3
	}

	if !v.ready {
		v.viewport = viewport.New(transcriptWidth, transcriptHeight)
		v.ready = true
	} else {
		v.viewport.Width = transcriptWidth
		v.viewport.Height = transcriptHeight
	}
	v.input.SetWidth(transcriptWidth - 2)
	v.refreshTranscript()
}

// sidebarWidth returns the width of one sidebar column at this breakpoint.
func (v *chatView) sidebarWidth() int {
	w := v.width / 4
	if w > 32 {
		w = 32
	}
	if w < 20 {
		w = 20
	}
	return w
}

// transcriptWidth returns the width left for the transcript after the
// sidebars this breakpoint shows.
func (v *chatView) transcriptWidth() int {
	w := v.width
	if v.breakpoint.ShowQuickActions() {
		w -= v.sidebarWidth()
	}
	if v.breakpoint.ShowSessionSidebar() {
		w -= v.sidebarWidth()
	}
	if w < 20 {
		w = v.width
	}
	return w
}

// =============================================================================
// SENDING
// =============================================================================

// sendCmd sends the trimmed input through the coordinator. The one-in-flight
// guard lives in the coordinator; a rejected send surfaces as SendResultMsg.
func (v *chatView) sendCmd(text string) tea.Cmd {
	coordinator := v.coordinator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()
		exchange, err := coordinator.Send(ctx, text)
		return SendResultMsg{Exchange: exchange, Err: err}
	}
}

// submit validates locally and kicks off the send.
func (v *chatView) submit() tea.Cmd {
	text := strings.TrimSpace(v.input.Value())
	if text == "" {
		return nil
	}
	if v.coordinator.Busy() {
		return nil
	}
	v.input.Reset()
	_ = v.store.ClearDraft()
	// Echo the message immediately; the exchange replaces it on reply.
	v.pending = text
	v.refreshTranscript()
	v.viewport.GotoBottom()
	return tea.Batch(v.sendCmd(text), v.typing.Start())
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles chat-surface messages. Key chords and intent messages are
// handled by the app model before reaching here.
func (v chatView) Update(msg tea.Msg) (chatView, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if cmd := v.submit(); cmd != nil {
				return v, cmd
			}
			return v, nil
		case "ctrl+j":
			v.input.InsertString("\n")
			return v, nil
		case "pgup", "ctrl+u":
			v.viewport.HalfViewUp()
			return v, nil
		case "pgdown", "ctrl+d":
			v.viewport.HalfViewDown()
			return v, nil
		case "tab":
			v.cycleQuickAction()
			return v, nil
		}

		before := v.input.Value()
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		cmds = append(cmds, cmd)
		if after := v.input.Value(); after != before {
			// Autosave the draft on every edit; empty input clears it.
			_ = v.store.SaveDraft(after)
		}
		return v, tea.Batch(cmds...)

	case SendResultMsg:
		v.typing.Stop()
		v.pending = ""
		if msg.Err != nil {
			// Local validation failures surface as toasts from the app;
			// request failures get the fixed bot-voice reply in the
			// transcript.
			if !isLocalSendError(msg.Err) {
				v.errReply = chat.BotReply(msg.Err)
			}
			v.refreshTranscript()
			v.viewport.GotoBottom()
			return v, nil
		}
		v.errReply = ""
		v.products = msg.Exchange.Products
		v.selected = 0
		v.refreshTranscript()
		v.viewport.GotoBottom()
		return v, nil

	case HistoryLoadedMsg:
		if msg.Err == nil {
			v.errReply = ""
			v.products = nil
			v.refreshTranscript()
			v.viewport.GotoBottom()
		}
		return v, nil

	case ClearedMsg:
		v.errReply = ""
		v.pending = ""
		v.products = nil
		v.selected = 0
		v.refreshTranscript()
		return v, nil

	case SessionsLoadedMsg:
		if msg.Err == nil {
			v.sessions = msg.Sessions
		}
		return v, nil

	case QuickActionsLoadedMsg:
		if msg.Err == nil {
			v.quickActions = msg.Actions
		}
		return v, nil

	case DraftRestoredMsg:
		v.input.SetValue(msg.Draft)
		return v, nil
	}

	var cmd tea.Cmd
	if c := v.typing.Update(msg); c != nil {
		cmds = append(cmds, c)
	}
	v.viewport, cmd = v.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return v, tea.Batch(cmds...)
}

// cycleQuickAction fills the input with the next canned prompt. It only
// fires when the input is empty or already holds a quick action, so tab
// never clobbers typed text.
func (v *chatView) cycleQuickAction() {
	if len(v.quickActions) == 0 {
		return
	}
	if current := v.input.Value(); current != "" && !v.isQuickActionText(current) {
		return
	}
	text := v.quickActions[v.qaIndex%len(v.quickActions)].Text
	v.qaIndex++
	v.input.SetValue(text)
	_ = v.store.SaveDraft(text)
}

func (v *chatView) isQuickActionText(s string) bool {
	for _, qa := range v.quickActions {
		if qa.Text == s {
			return true
		}
	}
	return false
}

// =============================================================================
// TRANSCRIPT RENDERING
// =============================================================================

// botRenderer returns the markup renderer styled for bot bubbles.
func (v *chatView) botRenderer() markup.Renderer {
	bold := lipgloss.NewStyle().Bold(true)
	italic := lipgloss.NewStyle().Italic(true)
	return markup.Renderer{
		Bold:   func(s string) string { return bold.Render(s) },
		Italic: func(s string) string { return italic.Render(s) },
		Bullet: "  • ",
		Indent: "  ",
	}
}

// refreshTranscript re-renders the conversation into the viewport.
func (v *chatView) refreshTranscript() {
	if !v.ready {
		return
	}

	exchanges := v.coordinator.Exchanges()
	if len(exchanges) == 0 && v.errReply == "" && v.pending == "" {
		v.viewport.SetContent(v.theme.ModalDimmed.Render(
			"Say hello to start shopping. Type /help for commands."))
		return
	}

	renderer := v.botRenderer()
	bubbleWidth := v.breakpoint.BubbleWidthFor(v.viewport.Width - 2)
	compact := v.breakpoint.Compact()

	var b strings.Builder
	for i, ex := range exchanges {
		if i > 0 {
			b.WriteString("\n")
		}
		user := v.theme.UserBubble.MaxWidth(bubbleWidth).Render(ex.UserMessage)
		b.WriteString(lipgloss.PlaceHorizontal(v.viewport.Width, lipgloss.Right, user))
		b.WriteString("\n")

		bot := v.theme.BotBubble.MaxWidth(bubbleWidth).Render(renderer.Render(ex.BotResponse))
		b.WriteString(bot)
		if !compact && !ex.Timestamp.IsZero() {
			b.WriteString("\n")
			b.WriteString(v.theme.Timestamp.Render(ex.Timestamp.Format("15:04")))
		}
		b.WriteString("\n")
	}
	if v.pending != "" {
		b.WriteString("\n")
		echo := v.theme.UserBubble.MaxWidth(bubbleWidth).Render(v.pending)
		b.WriteString(lipgloss.PlaceHorizontal(v.viewport.Width, lipgloss.Right, echo))
		b.WriteString("\n")
	}
	if v.errReply != "" {
		b.WriteString("\n")
		b.WriteString(v.theme.SystemBubble.MaxWidth(bubbleWidth).Render(v.errReply))
		b.WriteString("\n")
	}
	if view := v.typing.View(); view != "" {
		b.WriteString("\n")
		b.WriteString(view)
	}
	v.viewport.SetContent(b.String())
}

// isLocalSendError reports whether a send failed before reaching the
// network (empty, too long, or another send in flight).
func isLocalSendError(err error) bool {
	return errors.Is(err, chat.ErrBusy) ||
		errors.Is(err, chat.ErrEmptyMessage) ||
		errors.Is(err, chat.ErrTooLong)
}

// InputValue returns the current input text.
func (v *chatView) InputValue() string {
	return v.input.Value()
}

// ResetInput clears the input and its saved draft.
func (v *chatView) ResetInput() {
	v.input.Reset()
	_ = v.store.ClearDraft()
}

// FocusInput returns keyboard focus to the input.
func (v *chatView) FocusInput() {
	v.input.Focus()
}

// CycleProduct advances the product selection, wrapping around.
func (v *chatView) CycleProduct() {
	if len(v.products) == 0 {
		return
	}
	v.selected = (v.selected + 1) % len(v.products)
}

// SelectedProduct returns the highlighted product, or nil when the panel
// is empty.
func (v *chatView) SelectedProduct() *model.Product {
	if len(v.products) == 0 || v.selected >= len(v.products) {
		return nil
	}
	return &v.products[v.selected]
}

// =============================================================================
// VIEW
// =============================================================================

// charCount renders the "123/500" counter, highlighted near the limit.
func (v *chatView) charCount() string {
	count := util.RuneLen(v.input.Value())
	text := fmt.Sprintf("%d/%d", count, v.maxInput)
	if float64(count) >= float64(v.maxInput)*charWarnRatio {
		return v.theme.CharCountDanger.Render(text)
	}
	return v.theme.CharCount.Render(text)
}

// quickActionsPanel renders the canned prompt suggestions.
func (v *chatView) quickActionsPanel(width int) string {
	if len(v.quickActions) == 0 {
		return ""
	}
	parts := []string{v.theme.SidebarTitle.Render("Quick actions")}
	for _, qa := range v.quickActions {
		parts = append(parts, v.theme.SidebarItem.Render(
			util.TruncateWidth(qa.Text, width-4)))
	}
	return v.theme.Sidebar.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// sessionsPanel renders the recent conversation list.
func (v *chatView) sessionsPanel(width int) string {
	parts := []string{v.theme.SidebarTitle.Render("Recent chats")}
	if len(v.sessions) == 0 {
		parts = append(parts, v.theme.SidebarItem.Render("No saved chats"))
	}
	for _, s := range v.sessions {
		parts = append(parts, v.theme.SidebarItem.Render(
			util.TruncateWidth(s.Title(), width-4)))
	}
	return v.theme.Sidebar.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// View renders the full chat surface.
func (v chatView) View() string {
	if !v.ready {
		return "Loading..."
	}

	inputBox := v.theme.InputContainer.
		Width(v.transcriptWidth() - 2).
		Render(v.input.View() + "\n" + v.charCount())

	center := lipgloss.JoinVertical(lipgloss.Left,
		v.viewport.View(),
		inputBox,
	)

	columns := []string{center}
	sw := v.sidebarWidth()
	if v.breakpoint.ShowQuickActions() {
		side := v.quickActionsPanel(sw)
		if len(v.products) > 0 {
			side = lipgloss.JoinVertical(lipgloss.Left,
				components.RenderProductPanel(v.theme, v.products, sw, v.selected),
				side)
		}
		columns = append(columns, side)
	}
	if v.breakpoint.ShowSessionSidebar() {
		columns = append(columns, v.sessionsPanel(sw))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopbot-tui/internal/api"
	"github.com/jeranaias/shopbot-tui/internal/auth"
	"github.com/jeranaias/shopbot-tui/internal/chat"
	"github.com/jeranaias/shopbot-tui/internal/commands"
	"github.com/jeranaias/shopbot-tui/internal/config"
	"github.com/jeranaias/shopbot-tui/internal/storage"
	"github.com/jeranaias/shopbot-tui/internal/ui/components"
	"github.com/jeranaias/shopbot-tui/internal/ui/styles"
	"github.com/jeranaias/shopbot-tui/internal/util"
)

// =============================================================================
// APP MODEL
// =============================================================================

const sidebarTimeout = 15 * time.Second

// draftNoticeDelay is how long after startup the restored-draft notice
// appears. The delay keeps it from being lost in the initial paint.
const draftNoticeDelay = time.Second

// App is the root Bubble Tea model. It routes between the auth view and
// the chat view, and owns the cross-cutting surfaces: toasts, the modal
// stack, slash commands and keyboard dispatch.
type App struct {
	cfg   *config.Config
	theme *styles.Theme
	keys  KeyMap

	authc *auth.Coordinator
	chatc *chat.Coordinator
	store *storage.StateStore

	registry *commands.Registry
	parser   *commands.Parser

	toasts *components.ToastManager
	modals *components.ModalStack

	authView authView
	chatView chatView

	width  int
	height int

	draftNoticeShown bool
	sessionsModal    bool // open the sessions modal when the list arrives
}

// NewApp wires the root model from its coordinators.
func NewApp(cfg *config.Config, authc *auth.Coordinator, chatc *chat.Coordinator, store *storage.StateStore) *App {
	theme := styles.New(cfg.UI.Theme)
	registry := commands.NewRegistry()

	return &App{
		cfg:      cfg,
		theme:    theme,
		keys:     DefaultKeyMap(),
		authc:    authc,
		chatc:    chatc,
		store:    store,
		registry: registry,
		parser:   commands.NewParser(registry),
		toasts:   components.NewToastManager(),
		modals:   components.NewModalStack(),
		authView: newAuthView(authc),
		chatView: newChatView(chatc, store, theme, cfg.Chat.MaxInputChars),
	}
}

// Init starts the toast ticker and, when already authenticated, the
// sidebar loads and the draft restore.
func (m *App) Init() tea.Cmd {
	cmds := []tea.Cmd{components.ToastTickCmd()}
	if m.authc.IsAuthenticated() {
		cmds = append(cmds, m.loadSidebarsCmd(), m.restoreDraftCmd())
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// COMMANDS
// =============================================================================

// restoreDraftCmd emits the saved draft once, after a short delay.
func (m *App) restoreDraftCmd() tea.Cmd {
	if !m.cfg.Chat.DraftAutosave {
		return nil
	}
	draft := m.store.LoadDraft()
	if draft == "" {
		return nil
	}
	return tea.Tick(draftNoticeDelay, func(time.Time) tea.Msg {
		return DraftRestoredMsg{Draft: draft}
	})
}

// loadSidebarsCmd fetches quick actions and the recent session list.
func (m *App) loadSidebarsCmd() tea.Cmd {
	chatc := m.chatc
	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), sidebarTimeout)
			defer cancel()
			actions, err := chatc.QuickActions(ctx)
			return QuickActionsLoadedMsg{Actions: actions, Err: err}
		},
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), sidebarTimeout)
			defer cancel()
			sessions, err := chatc.RecentSessions(ctx)
			return SessionsLoadedMsg{Sessions: sessions, Err: err}
		},
	)
}

func (m *App) exportCmd(format string) tea.Cmd {
	chatc := m.chatc
	dir := m.cfg.Export.Dir
	return func() tea.Msg {
		path, err := chatc.ExportAs(dir, format)
		if err != nil {
			return ExportDoneMsg{Err: err}
		}
		preview := ""
		if format == "" || format == "json" {
			// Preview failures are cosmetic; keep the export result.
			preview, _ = chatc.PreviewJSON()
		}
		return ExportDoneMsg{Path: path, Preview: preview}
	}
}

func (m *App) historyStatsCmd() tea.Cmd {
	chatc := m.chatc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sidebarTimeout)
		defer cancel()
		total, err := chatc.HistoryTotals(ctx)
		return HistoryStatsResultMsg{Total: total, Err: err}
	}
}

func (m *App) loadSessionCmd(id string) tea.Cmd {
	chatc := m.chatc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sidebarTimeout)
		defer cancel()
		err := chatc.LoadSession(ctx, id)
		return HistoryLoadedMsg{SessionID: id, Count: chatc.Len(), Err: err}
	}
}

func (m *App) logoutCmd() tea.Cmd {
	authc := m.authc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sidebarTimeout)
		defer cancel()
		authc.Logout(ctx)
		return LogoutDoneMsg{}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update is the root message router.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.authView.width = msg.Width
		m.authView.height = msg.Height
		m.chatView.resize(msg.Width, msg.Height)
		return m, nil

	case components.ToastTickMsg:
		m.toasts.Tick()
		return m, components.ToastTickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if cmd := m.handleIntent(msg); cmd != nil {
		return m, cmd
	}
	if handled, cmd := m.handleResult(msg); handled {
		return m, cmd
	}

	// Everything else belongs to the active view.
	return m.routeToView(msg)
}

// handleKey routes keyboard input: quit first, then the modal stack, then
// the active view with chord dispatch.
func (m *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// An open modal swallows input; esc closes only the topmost layer.
	if m.modals.HasModal() {
		if key.Matches(msg, m.keys.CloseModal) {
			m.modals.CloseTop()
		}
		return m, nil
	}

	if !m.authc.IsAuthenticated() {
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		return m, cmd
	}

	// Chords raise the same intent messages as slash commands.
	if intent := Dispatch(m.keys, msg); intent != nil {
		return m, func() tea.Msg { return intent }
	}

	// Product browsing is view-local state, not a command intent.
	if key.Matches(msg, m.keys.NextProduct) {
		m.chatView.CycleProduct()
		return m, nil
	}
	if key.Matches(msg, m.keys.ProductDetail) {
		if p := m.chatView.SelectedProduct(); p != nil {
			m.modals.Push(components.Modal{
				Kind:    components.ModalProduct,
				Title:   p.Name,
				Content: components.ProductDetail(m.theme, p, m.width),
			})
		}
		return m, nil
	}

	// Slash commands are parsed at submit time.
	if msg.String() == "enter" {
		if input := strings.TrimSpace(m.chatView.InputValue()); strings.HasPrefix(input, "/") {
			m.chatView.ResetInput()
			return m, m.runCommand(input)
		}
	}

	var cmd tea.Cmd
	m.chatView, cmd = m.chatView.Update(msg)
	return m, cmd
}

// runCommand parses and executes a slash command.
func (m *App) runCommand(input string) tea.Cmd {
	result := m.parser.Parse(input)
	if result.Error != nil {
		m.toasts.AddError(result.Error.Error())
		return nil
	}
	if result.Command == nil {
		return nil
	}

	ctx := &commands.HandlerContext{
		Username:       m.username(),
		ConversationID: m.chatc.ID(),
		MessageCount:   m.chatc.Len(),
		Sessions:       m.sessionInfos(),
	}
	return result.Command.Handler(ctx, result.Args)
}

func (m *App) username() string {
	if user := m.authc.CurrentUser(); user != nil {
		return user.Username
	}
	return ""
}

func (m *App) sessionInfos() []commands.SessionInfo {
	infos := make([]commands.SessionInfo, 0, len(m.chatView.sessions))
	for _, s := range m.chatView.sessions {
		infos = append(infos, commands.SessionInfo{
			ID:       s.SessionID,
			Title:    s.Title(),
			MsgCount: s.MessageCount,
		})
	}
	return infos
}

// handleIntent executes the intent messages raised by chords and slash
// commands. Returns nil when msg is not an intent.
func (m *App) handleIntent(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case commands.ShowHelpMsg:
		m.modals.Push(components.Modal{
			Kind:    components.ModalHelp,
			Title:   "ShopBot help",
			Content: renderHelp(m.registry, m.keys, m.width),
		})
		return noopCmd()

	case commands.NewChatMsg:
		newID := m.chatc.Clear()
		m.toasts.AddSuccess("Started a new chat")
		return func() tea.Msg { return ClearedMsg{NewID: newID} }

	case commands.ExportChatMsg:
		return m.exportCmd(msg.Format)

	case commands.LoadSessionMsg:
		return m.loadSessionCmd(msg.ID)

	case commands.ListSessionsMsg:
		m.sessionsModal = true
		return m.loadSidebarsCmd()

	case commands.HistoryStatsMsg:
		return m.historyStatsCmd()

	case commands.LogoutMsg:
		return m.logoutCmd()

	case commands.ThemeMsg:
		m.applyTheme(msg.Theme)
		return noopCmd()

	case commands.FocusInputMsg:
		m.chatView.FocusInput()
		return noopCmd()

	case commands.ErrorMsg:
		m.toasts.AddError(msg.Err.Error())
		return noopCmd()
	}
	return nil
}

// noopCmd marks an intent as handled without queueing further work.
func noopCmd() tea.Cmd {
	return func() tea.Msg { return nil }
}

// applyTheme rebuilds the style tree and persists the choice.
func (m *App) applyTheme(name string) {
	m.cfg.UI.Theme = name
	m.theme = styles.New(name)
	m.chatView.theme = m.theme
	if err := config.Save(m.cfg); err == nil {
		m.toasts.AddSuccess("Theme set to " + name)
	} else {
		m.toasts.AddWarning("Theme set to " + name + " (could not save config)")
	}
	m.chatView.refreshTranscript()
}

// handleResult processes async outcome messages. The bool reports whether
// the message was consumed here.
func (m *App) handleResult(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case LoginResultMsg:
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		if msg.Err == nil && msg.User != nil {
			m.toasts.AddSuccess("Welcome back, " + msg.User.Username)
			return true, tea.Batch(cmd, m.loadSidebarsCmd(), m.restoreDraftCmd())
		}
		return true, cmd

	case RegisterResultMsg:
		var cmd tea.Cmd
		m.authView, cmd = m.authView.Update(msg)
		if msg.Err == nil && msg.User != nil {
			m.toasts.AddSuccess("Account created. Welcome, " + msg.User.Username)
			return true, tea.Batch(cmd, m.loadSidebarsCmd())
		}
		return true, cmd

	case LogoutDoneMsg:
		m.modals.CloseAll()
		m.toasts.AddStatus("Signed out")
		return true, nil

	case SendResultMsg:
		if msg.Err != nil {
			m.sendErrorToast(msg.Err)
		}
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		if msg.Err == nil {
			// The exchange changed what the server knows; refresh the
			// recent-conversations list in the background.
			cmd = tea.Batch(cmd, m.loadSidebarsCmd())
		}
		return true, cmd

	case ExportDoneMsg:
		if msg.Err != nil {
			m.toasts.AddError("Export failed: " + msg.Err.Error())
			return true, nil
		}
		m.toasts.AddSuccess("Chat exported to " + msg.Path)
		if msg.Preview != "" {
			m.modals.Push(components.Modal{
				Kind:    components.ModalExport,
				Title:   "Export preview",
				Content: msg.Preview,
			})
		}
		return true, nil

	case HistoryStatsResultMsg:
		if msg.Err != nil {
			m.toasts.AddError("Could not fetch history: " + msg.Err.Error())
		} else {
			m.toasts.AddStatus(fmt.Sprintf("%d messages stored across your conversations", msg.Total))
		}
		return true, nil

	case HistoryLoadedMsg:
		if msg.Err != nil {
			m.toasts.AddError("Could not load session: " + msg.Err.Error())
			return true, nil
		}
		m.modals.CloseAll()
		m.toasts.AddStatus("Loaded previous conversation")
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return true, cmd

	case SessionsLoadedMsg:
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		if m.sessionsModal {
			m.sessionsModal = false
			if msg.Err != nil {
				m.toasts.AddError("Could not load sessions: " + msg.Err.Error())
			} else {
				m.modals.Push(components.Modal{
					Kind:    components.ModalSessions,
					Title:   "Recent conversations",
					Content: m.sessionsModalContent(),
				})
			}
		}
		return true, cmd

	case DraftRestoredMsg:
		if !m.draftNoticeShown {
			m.draftNoticeShown = true
			m.toasts.AddStatus("Draft restored")
		}
		var cmd tea.Cmd
		m.chatView, cmd = m.chatView.Update(msg)
		return true, cmd

	case ConfigReloadedMsg:
		m.toasts.AddStatus("Configuration reloaded")
		return true, nil
	}
	return false, nil
}

// sendErrorToast raises the notice matching a failed send. Local validation
// failures are warnings; everything else pairs an error toast with the
// bot-voice transcript reply the chat view renders.
func (m *App) sendErrorToast(err error) {
	switch {
	case isLocalSendError(err):
		m.toasts.AddWarning(err.Error())
	case errors.Is(err, api.ErrAuthRequired), errors.Is(err, auth.ErrNotAuthenticated):
		m.toasts.AddError("Authentication required. Please login.")
	default:
		if apiErr, ok := api.AsAPIError(err); ok {
			m.toasts.AddError(apiErr.UserMessage("Something went wrong. Please try again."))
		} else {
			m.toasts.AddError("Could not reach the server. Check your connection.")
		}
	}
}

// sessionsModalContent lists the recent sessions with their load command.
func (m *App) sessionsModalContent() string {
	if len(m.chatView.sessions) == 0 {
		return "No saved conversations yet."
	}
	var b strings.Builder
	for _, s := range m.chatView.sessions {
		b.WriteString(m.theme.SidebarItem.Render("• " + util.TruncateRunes(s.Title(), 60)))
		b.WriteString("\n")
		b.WriteString(m.theme.ModalDimmed.Render("  /load " + s.SessionID))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// routeToView forwards unclassified messages to the active view.
func (m *App) routeToView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.authc.IsAuthenticated() {
		m.chatView, cmd = m.chatView.Update(msg)
	} else {
		m.authView, cmd = m.authView.Update(msg)
	}
	return m, cmd
}

// =============================================================================
// VIEW
// =============================================================================

// header renders the brand line with the signed-in user.
func (m *App) header() string {
	brand := m.theme.HeaderBrand.Render("ShopBot")
	user := ""
	if u := m.authc.CurrentUser(); u != nil {
		user = m.theme.HeaderUser.Render("  " + u.Username)
	}
	return m.theme.Header.Width(m.width).Render(brand + user)
}

// statusBar renders the short help line.
func (m *App) statusBar() string {
	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, m.theme.ShortcutKey.Render(h.Key)+" "+m.theme.Shortcut.Render(h.Desc))
	}
	return m.theme.StatusBar.Width(m.width).Render(strings.Join(parts, "  "))
}

// View renders the whole terminal frame.
func (m *App) View() string {
	if m.width <= 0 {
		return "Loading..."
	}

	var body string
	if m.authc.IsAuthenticated() {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.header(),
			m.chatView.View(),
			m.statusBar(),
		)
	} else {
		body = m.authView.View(m.theme)
	}

	if m.modals.HasModal() {
		body = m.modals.RenderModal(m.theme, m.width, m.height)
	}

	if m.toasts.HasToasts() {
		stack := components.RenderToastStack(m.toasts.Toasts(), m.width)
		body = lipgloss.JoinVertical(lipgloss.Left, body, stack)
	}
	return body
}

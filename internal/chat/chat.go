// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/jeranaias/shopbot-tui/internal/api"
	"github.com/jeranaias/shopbot-tui/internal/auth"
	"github.com/jeranaias/shopbot-tui/internal/export"
	"github.com/jeranaias/shopbot-tui/internal/model"
	"github.com/jeranaias/shopbot-tui/internal/util"
)

// =============================================================================
// REQUEST STATE
// =============================================================================

// RequestState tracks whether a send is in flight.
type RequestState int

const (
	// StateIdle means no request is running; sends are accepted.
	StateIdle RequestState = iota
	// StatePending means a send is awaiting its response; further sends
	// are rejected until it completes.
	StatePending
)

func (s RequestState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	default:
		return "unknown"
	}
}

// =============================================================================
// ERRORS AND FIXED BOT MESSAGES
// =============================================================================

var (
	// ErrBusy indicates a send was attempted while another is in flight.
	ErrBusy = errors.New("a message is already being sent")

	// ErrEmptyMessage indicates the trimmed input was empty.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrTooLong indicates the input exceeds the configured maximum.
	ErrTooLong = errors.New("message is too long")
)

// Fixed bot-voice strings rendered into the transcript area on failure.
const (
	// MsgLoginPrompt is shown when a send fails for lack of authentication.
	MsgLoginPrompt = "Please login first to start chatting with ShopBot."

	// MsgServerError is shown when the backend rejected the message.
	MsgServerError = "Sorry, I encountered an error. Please try again."

	// MsgConnectError is shown when the backend was unreachable.
	MsgConnectError = "Sorry, I'm having trouble connecting. Please check your connection."
)

// BotReply maps a send failure to the fixed bot-voice string for it.
func BotReply(err error) string {
	switch {
	case errors.Is(err, api.ErrAuthRequired), errors.Is(err, auth.ErrNotAuthenticated):
		return MsgLoginPrompt
	default:
		if _, ok := api.AsAPIError(err); ok {
			return MsgServerError
		}
		return MsgConnectError
	}
}

// =============================================================================
// COORDINATOR
// =============================================================================

// DefaultMaxInput is the default per-message input limit in characters.
const DefaultMaxInput = 500

// Service is the subset of the API client the coordinator uses.
type Service interface {
	SendMessage(ctx context.Context, headers http.Header, message, sessionID string) (*api.MessageResponse, error)
	History(ctx context.Context, headers http.Header, sessionID string) (*api.HistoryResponse, error)
	Sessions(ctx context.Context, headers http.Header) ([]api.SessionSummary, error)
	QuickActions(ctx context.Context) ([]api.QuickAction, error)
}

// Credentials supplies the auth state a conversation needs.
// *auth.Coordinator satisfies it.
type Credentials interface {
	Headers() (http.Header, error)
	CurrentUser() *model.User
}

// Coordinator manages the active conversation.
type Coordinator struct {
	service  Service
	creds    Credentials
	logger   *log.Logger
	maxInput int

	mu    sync.Mutex
	state RequestState
	conv  *model.Conversation
}

// NewCoordinator creates a Coordinator with a fresh conversation.
func NewCoordinator(service Service, creds Credentials) *Coordinator {
	return &Coordinator{
		service:  service,
		creds:    creds,
		logger:   log.Default(),
		maxInput: DefaultMaxInput,
		state:    StateIdle,
		conv:     model.NewConversation(),
	}
}

// WithLogger sets the logger used for non-fatal conversation events.
func (c *Coordinator) WithLogger(logger *log.Logger) *Coordinator {
	c.logger = logger
	return c
}

// WithMaxInput sets the per-message input limit in characters.
func (c *Coordinator) WithMaxInput(limit int) *Coordinator {
	if limit > 0 {
		c.maxInput = limit
	}
	return c
}

// State returns the current request state.
func (c *Coordinator) State() RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a send is in flight.
func (c *Coordinator) Busy() bool {
	return c.State() == StatePending
}

// ID returns the active conversation id.
func (c *Coordinator) ID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.ID
}

// Exchanges returns a snapshot of the transcript in chronological order.
func (c *Coordinator) Exchanges() []model.Exchange {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Exchange, len(c.conv.Exchanges))
	copy(out, c.conv.Exchanges)
	return out
}

// Len returns the number of completed exchanges.
func (c *Coordinator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Len()
}

// =============================================================================
// SEND
// =============================================================================

// Send validates text, performs the round trip, and appends the completed
// exchange. Validation failures and the in-flight guard reject before any
// network activity, leaving the transcript untouched. On any error the
// transcript is also untouched; BotReply maps the error to its display string.
func (c *Coordinator) Send(ctx context.Context, text string) (model.Exchange, error) {
	message, err := c.begin(text)
	if err != nil {
		return model.Exchange{}, err
	}
	defer c.settle()

	headers, err := c.creds.Headers()
	if err != nil {
		return model.Exchange{}, err
	}

	c.mu.Lock()
	sessionID := c.conv.ID
	c.mu.Unlock()

	resp, err := c.service.SendMessage(ctx, headers, message, sessionID)
	if err != nil {
		c.logger.Printf("chat: send failed: %v", err)
		return model.Exchange{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.AddExchange(message, resp.BotResponse, resp.Products), nil
}

// begin validates the input and claims the in-flight slot.
func (c *Coordinator) begin(text string) (string, error) {
	message := strings.TrimSpace(text)
	if message == "" {
		return "", ErrEmptyMessage
	}
	if util.RuneLen(message) > c.maxInput {
		return "", ErrTooLong
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StatePending {
		return "", ErrBusy
	}
	c.state = StatePending
	return message, nil
}

// settle releases the in-flight slot.
func (c *Coordinator) settle() {
	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
}

// =============================================================================
// SESSION MANAGEMENT
// =============================================================================

// LoadSession replaces the active conversation with the stored transcript for
// id. The backend returns entries newest-first; they are reversed so the
// rebuilt transcript reads chronologically.
func (c *Coordinator) LoadSession(ctx context.Context, id string) error {
	headers, err := c.creds.Headers()
	if err != nil {
		return err
	}

	resp, err := c.service.History(ctx, headers, id)
	if err != nil {
		return err
	}

	conv := &model.Conversation{
		ID:        id,
		Exchanges: make([]model.Exchange, 0, len(resp.ChatHistory)),
	}
	for i := len(resp.ChatHistory) - 1; i >= 0; i-- {
		entry := resp.ChatHistory[i]
		conv.Exchanges = append(conv.Exchanges, model.Exchange{
			UserMessage: entry.Message,
			BotResponse: entry.Response,
			Timestamp:   entry.Time(),
		})
	}
	if len(conv.Exchanges) > 0 {
		conv.CreatedAt = conv.Exchanges[0].Timestamp
	}

	c.mu.Lock()
	c.conv = conv
	c.mu.Unlock()
	return nil
}

// HistoryTotals fetches the stored-message total across all of the user's
// conversations (the unscoped history endpoint).
func (c *Coordinator) HistoryTotals(ctx context.Context) (int, error) {
	headers, err := c.creds.Headers()
	if err != nil {
		return 0, err
	}
	resp, err := c.service.History(ctx, headers, "")
	if err != nil {
		return 0, err
	}
	if resp.Pagination.Total > 0 {
		return resp.Pagination.Total, nil
	}
	return len(resp.ChatHistory), nil
}

// Clear discards the transcript and starts a fresh conversation. The new id
// always differs from the old one.
func (c *Coordinator) Clear() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.conv.ID
	next := model.NewConversation()
	for next.ID == old {
		next = model.NewConversation()
	}
	c.conv = next
	return next.ID
}

// =============================================================================
// EXPORT
// =============================================================================

// Export writes the transcript as a JSON artifact into dir.
// Returns export.ErrEmptyConversation when there is nothing to export; the
// artifact's messages list always matches the transcript length exactly.
func (c *Coordinator) Export(dir string) (string, error) {
	return c.ExportAs(dir, "json")
}

// ExportAs writes the conversation in the named format: "json", "md" or
// "html". Unknown formats fall back to JSON.
func (c *Coordinator) ExportAs(dir, format string) (string, error) {
	artifact, err := c.artifact()
	if err != nil {
		return "", err
	}

	opts := &export.Options{OutputDir: dir}
	switch format {
	case "md", "markdown":
		return export.ExportMarkdown(artifact, opts)
	case "html":
		return export.ExportHTML(artifact, opts)
	default:
		return export.ExportJSON(artifact, opts)
	}
}

// PreviewJSON renders the current conversation's export artifact as
// highlighted JSON, without writing anything to disk.
func (c *Coordinator) PreviewJSON() (string, error) {
	artifact, err := c.artifact()
	if err != nil {
		return "", err
	}
	return export.Preview(artifact)
}

// artifact snapshots the conversation and builds the export artifact.
func (c *Coordinator) artifact() (*export.Artifact, error) {
	c.mu.Lock()
	conv := &model.Conversation{
		ID:        c.conv.ID,
		CreatedAt: c.conv.CreatedAt,
		Exchanges: append([]model.Exchange(nil), c.conv.Exchanges...),
	}
	c.mu.Unlock()

	username := ""
	if user := c.creds.CurrentUser(); user != nil {
		username = user.Username
	}
	return export.NewArtifact(conv, username)
}

// =============================================================================
// SIDEBARS
// =============================================================================

// MaxRecentSessions caps the recent-conversations list.
const MaxRecentSessions = 5

// RecentSessions fetches the newest stored conversations, at most
// MaxRecentSessions of them.
func (c *Coordinator) RecentSessions(ctx context.Context) ([]api.SessionSummary, error) {
	headers, err := c.creds.Headers()
	if err != nil {
		return nil, err
	}
	sessions, err := c.service.Sessions(ctx, headers)
	if err != nil {
		return nil, err
	}
	if len(sessions) > MaxRecentSessions {
		sessions = sessions[:MaxRecentSessions]
	}
	return sessions, nil
}

// QuickActions fetches the canned prompt suggestions. No auth required.
func (c *Coordinator) QuickActions(ctx context.Context) ([]api.QuickAction, error) {
	return c.service.QuickActions(ctx)
}

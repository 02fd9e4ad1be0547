// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and products.
package model

import (
	"crypto/rand"
	"strconv"
	"time"
)

// =============================================================================
// EXCHANGE TYPE
// =============================================================================

// Exchange is one completed user/bot round-trip: the user message paired with
// the bot response and any products the backend attached to it.
type Exchange struct {
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
	Timestamp   time.Time `json:"timestamp"`
	Products    []Product `json:"products"`
}

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the client-side view of one chat run: the client-chosen
// conversation id and the ordered exchanges completed under it.
//
// Exchanges are append-only and chronological. An exchange is added only
// after the backend confirmed it; failed sends never reach the history.
type Conversation struct {
	ID        string     `json:"session_id"`
	CreatedAt time.Time  `json:"created_at"`
	Exchanges []Exchange `json:"exchanges"`
}

// NewConversation creates an empty conversation with a fresh id.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        GenerateConversationID(),
		CreatedAt: time.Now(),
		Exchanges: make([]Exchange, 0),
	}
}

// AddExchange appends a completed exchange. Products may be nil.
func (c *Conversation) AddExchange(userMessage, botResponse string, products []Product) Exchange {
	ex := Exchange{
		UserMessage: userMessage,
		BotResponse: botResponse,
		Timestamp:   time.Now(),
		Products:    products,
	}
	c.Exchanges = append(c.Exchanges, ex)
	return ex
}

// Len returns the number of completed exchanges.
func (c *Conversation) Len() int {
	return len(c.Exchanges)
}

// IsEmpty returns true if no exchange has completed yet.
func (c *Conversation) IsEmpty() bool {
	return len(c.Exchanges) == 0
}

// =============================================================================
// CONVERSATION ID
// =============================================================================

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateConversationID creates a client-side conversation id of the form
// "session_<unix-millis>_<9 alphanumerics>". This id correlates a run of
// exchanges and is unrelated to the backend's auth session id.
func GenerateConversationID() string {
	suffix := make([]byte, 9)
	rand.Read(suffix)
	for i, b := range suffix {
		suffix[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	millis := time.Now().UnixMilli()
	return "session_" + strconv.FormatInt(millis, 10) + "_" + string(suffix)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and products.
package model

import "time"

// =============================================================================
// AUTH SESSION TYPES
// =============================================================================

// User is the backend's user record as returned by login and registration.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// MemberSince parses the user's creation timestamp for display.
// Returns the zero time if the backend value cannot be parsed.
func (u *User) MemberSince() time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, u.CreatedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}

// AuthSession is the logged-in identity: bearer token, user record, and the
// backend-issued auth session id. It is distinct from the client-generated
// conversation id.
//
// A session is either fully present (all three fields set) or fully absent.
// Partial states are invalid and are discarded on load.
type AuthSession struct {
	Token     string `json:"access_token"`
	User      *User  `json:"user"`
	SessionID string `json:"session_id"`
}

// IsComplete reports whether every field of the session is populated.
func (s *AuthSession) IsComplete() bool {
	return s != nil && s.Token != "" && s.User != nil && s.SessionID != ""
}

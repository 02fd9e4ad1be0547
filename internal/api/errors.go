// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the ShopBot backend.
package api

import (
	"errors"
	"fmt"
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================

// ErrAuthRequired indicates the backend rejected the call with 401 or 422,
// the distinguished "please log in" case.
// Use errors.Is(err, ErrAuthRequired) to check for it.
var ErrAuthRequired = errors.New("authentication required")

// APIError is any other non-2xx response from the backend. Message carries
// the server-supplied error string when the body had one.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// UserMessage returns the text to surface in a notification: the server's
// error string when present, else a generic failure message.
func (e *APIError) UserMessage(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

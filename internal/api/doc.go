// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the ShopBot backend.
//
// The backend is an external collaborator reached only through its JSON
// endpoints: auth (login, register, logout), chatbot message, quick actions,
// session list, and history. Every call takes a context and performs exactly
// one attempt; a failure is terminal for that one user action and surfaces to
// the caller as a typed error:
//
//   - ErrAuthRequired for the distinguished 401/422 responses
//   - *APIError for any other non-2xx response
//   - transport errors pass through wrapped
//
// Auxiliary endpoints (quick actions, session list) are rate limited client
// side so background refreshes cannot stampede the backend. They carry no
// ordering guarantee relative to each other or to an in-flight send.
package api

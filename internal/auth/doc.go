// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth coordinates authentication state for shopbot.
//
// The Coordinator owns the bearer token, the logged-in user, and the
// server-assigned session id as a single unit: they are committed together
// after a successful login or registration, restored together from the state
// store, and discarded together on logout. Credential validation happens
// locally before any network call so malformed input never reaches the wire.
package auth

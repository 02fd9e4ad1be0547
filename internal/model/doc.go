// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations, exchanges,
// products, and the authenticated session.
//
// All wire types mirror the ShopBot backend's JSON field names (snake_case).
// Conversations are append-only: an Exchange is added only after a successful
// message round-trip and is never mutated afterwards.
package model

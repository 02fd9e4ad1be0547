// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(srv.URL + "/api").WithAuxRate(time.Millisecond, 100)
	return client, srv
}

// =============================================================================
// AUTH ENDPOINT TESTS
// =============================================================================

func TestClient_Login_Success(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"access_token":"tok123","user":{"id":1,"username":"alice","email":"a@b.c"},"session_id":"auth-sess-1"}`))
	}))
	defer srv.Close()

	resp, err := client.Login(context.Background(), "alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "tok123", resp.AccessToken)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Equal(t, "auth-sess-1", resp.SessionID)
}

func TestClient_Login_ServerError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := client.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Equal(t, "Invalid credentials", apiErr.UserMessage("Login failed"))
}

func TestClient_Login_NoErrorBody(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := client.Login(context.Background(), "alice", "secret1")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "Login failed", apiErr.UserMessage("Login failed"))
}

func TestClient_TransportError(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/api")

	_, err := client.Login(context.Background(), "alice", "secret1")
	require.Error(t, err)
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI, "transport error should not be an APIError")
	assert.False(t, errors.Is(err, ErrAuthRequired))
}

// =============================================================================
// CHATBOT ENDPOINT TESTS
// =============================================================================

func TestClient_SendMessage_AuthRequired(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusUnprocessableEntity} {
		client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			w.Write([]byte(`{"error":"Missing Authorization Header"}`))
		}))

		_, err := client.SendMessage(context.Background(), nil, "hi", "session_1_abc")
		assert.True(t, errors.Is(err, ErrAuthRequired), "status %d should map to ErrAuthRequired", status)
		srv.Close()
	}
}

func TestClient_SendMessage_ForwardsAuthHeader(t *testing.T) {
	var gotAuth string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"bot_response":"Here you go","products":[{"id":7,"name":"Laptop","price":999.5,"rating":4.5,"stock_quantity":3}]}`))
	}))
	defer srv.Close()

	headers := http.Header{}
	headers.Set("Authorization", "Bearer tok123")

	resp, err := client.SendMessage(context.Background(), headers, "laptops", "session_1_abc")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.Equal(t, "Here you go", resp.BotResponse)
	require.Len(t, resp.Products, 1)
	assert.Equal(t, "Laptop", resp.Products[0].Name)
}

func TestClient_QuickActions(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/chatbot/quick-actions", r.URL.Path)
		w.Write([]byte(`{"quick_actions":[{"text":"Show laptops","description":"Browse laptops"}]}`))
	}))
	defer srv.Close()

	actions, err := client.QuickActions(context.Background())
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "Show laptops", actions[0].Text)
}

func TestClient_History_QueryParam(t *testing.T) {
	var gotQuery string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"chat_history":[{"message":"m2","response":"r2"},{"message":"m1","response":"r1"}],"pagination":{"total":2}}`))
	}))
	defer srv.Close()

	resp, err := client.History(context.Background(), nil, "session_9_zzz")
	require.NoError(t, err)
	assert.Equal(t, "session_id=session_9_zzz", gotQuery)
	assert.Equal(t, 2, resp.Pagination.Total)
	// Newest-first order is preserved by the client; callers reverse.
	assert.Equal(t, "m2", resp.ChatHistory[0].Message)
}

func TestClient_Sessions(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sessions":[{"session_id":"s1","message_count":1,"last_message":"2026-01-02T15:04:05"},{"session_id":"s2","message_count":4,"last_message":"2026-01-03T10:00:00"}]}`))
	}))
	defer srv.Close()

	sessions, err := client.Sessions(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "New conversation", sessions[0].Title())
	assert.Equal(t, "Conversation (4 messages)", sessions[1].Title())
	assert.False(t, sessions[0].LastMessageTime().IsZero())
}

func TestClient_Logout_BestEffortError(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := client.Logout(context.Background(), nil, "auth-sess-1")
	require.Error(t, err) // callers log and continue
}

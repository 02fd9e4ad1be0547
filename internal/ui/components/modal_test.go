// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import "testing"

func TestModalStackTopmostOnlyClose(t *testing.T) {
	s := NewModalStack()

	s.Push(Modal{Kind: ModalSessions, Title: "Sessions"})
	s.Push(Modal{Kind: ModalProduct, Title: "UltraBook Pro 15"})

	if s.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", s.Depth())
	}
	if top := s.Top(); top == nil || top.Kind != ModalProduct {
		t.Fatal("expected product modal on top")
	}

	// One close request removes exactly one layer.
	if !s.CloseTop() {
		t.Fatal("CloseTop returned false with layers open")
	}
	if top := s.Top(); top == nil || top.Kind != ModalSessions {
		t.Error("expected sessions modal to remain after closing product modal")
	}

	if !s.CloseTop() {
		t.Fatal("CloseTop returned false with one layer open")
	}
	if s.HasModal() {
		t.Error("expected empty stack")
	}
	if s.CloseTop() {
		t.Error("CloseTop on empty stack should return false")
	}
}

func TestModalStackCloseAll(t *testing.T) {
	s := NewModalStack()
	s.Push(Modal{Kind: ModalHelp})
	s.Push(Modal{Kind: ModalConfirm})

	s.CloseAll()
	if s.HasModal() || s.Depth() != 0 {
		t.Error("expected empty stack after CloseAll")
	}
}

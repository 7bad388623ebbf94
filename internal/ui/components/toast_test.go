// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/session"
)

func TestToastManager_AddAndRemove(t *testing.T) {
	m := NewToastManager()
	assert.False(t, m.HasToasts())

	id := m.AddError("connection refused")
	assert.True(t, m.HasToasts())
	require.Len(t, m.GetToasts(), 1)
	assert.Equal(t, ToastKindError, m.GetToasts()[0].Kind)

	m.RemoveToast(id)
	assert.False(t, m.HasToasts())
}

func TestToastManager_NewestFirstAndCapped(t *testing.T) {
	m := NewToastManager()
	for i := 0; i < 7; i++ {
		m.AddStatus("note")
	}
	toasts := m.GetToasts()
	require.Len(t, toasts, 5)
	// Newest first: the highest ID leads.
	assert.Greater(t, toasts[0].ID, toasts[4].ID)
}

func TestToastManager_TickDropsExpired(t *testing.T) {
	m := NewToastManager()
	toast := NewStatusToast("old news")
	toast.CreatedAt = time.Now().Add(-time.Minute)
	m.AddToast(toast)
	m.AddError("still fresh")

	remaining := m.TickToasts()
	require.Len(t, remaining, 1)
	assert.Equal(t, ToastKindError, remaining[0].Kind)
}

func TestFromSessionError(t *testing.T) {
	toast := FromSessionError(session.Error{
		Kind:    session.ErrKindRateLimited,
		Message: "Too many requests",
	})
	assert.Equal(t, ToastKindWarning, toast.Kind)

	toast = FromSessionError(session.Error{
		Kind:    session.ErrKindNetworkError,
		Message: "Cannot reach the store",
	})
	assert.Equal(t, ToastKindError, toast.Kind)
	assert.Equal(t, "Cannot reach the store", toast.Message)
}

func TestRenderToast_ContainsMessage(t *testing.T) {
	out := RenderToast(NewErrorToast("payment declined"), 80)
	assert.Contains(t, out, "payment declined")
	assert.Contains(t, out, "[X]")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/api"
	"github.com/jeranaias/shopfront-tui/internal/session"
	"github.com/jeranaias/shopfront-tui/internal/storage"
	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()

	state, err := storage.Open(filepath.Join(t.TempDir(), "state.db"), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { state.Close() })

	client := api.NewClient("")
	return &Context{
		Theme:    styles.NewTheme(),
		Client:   client,
		Session:  session.NewStore(client, session.DefaultConfig()),
		State:    state,
		Currency: "LKR",
		PageSize: 20,
	}
}

func TestCatalog_LiveReplacesCache(t *testing.T) {
	v := NewCatalog(newTestContext(t))

	cached := []api.Product{{ID: "p1", Title: "Old"}}
	live := []api.Product{{ID: "p1", Title: "Fresh"}, {ID: "p2", Title: "New"}}

	next, _ := v.Update(catalogLoadedMsg{products: cached, cached: true})
	v = next.(*Catalog)
	assert.True(t, v.fromCache)
	assert.Len(t, v.products, 1)

	next, _ = v.Update(catalogLoadedMsg{products: live})
	v = next.(*Catalog)
	assert.False(t, v.fromCache)
	assert.Len(t, v.products, 2)
	assert.False(t, v.loading)
}

func TestCatalog_StaleCacheReadIgnoredAfterLive(t *testing.T) {
	v := NewCatalog(newTestContext(t))

	live := []api.Product{{ID: "p1", Title: "Fresh"}}
	next, _ := v.Update(catalogLoadedMsg{products: live})
	v = next.(*Catalog)

	// A slow cache read landing after live data must not clobber it.
	next, _ = v.Update(catalogLoadedMsg{products: []api.Product{{ID: "old"}}, cached: true})
	v = next.(*Catalog)
	assert.Equal(t, "p1", v.products[0].ID)
	assert.False(t, v.fromCache)
}

func TestCatalog_CachedArrivesAfterFetchError(t *testing.T) {
	v := NewCatalog(newTestContext(t))

	// Fast connection failure can resolve before the cache read does; the
	// cached listing must still render.
	next, _ := v.Update(catalogLoadedMsg{err: assert.AnError})
	v = next.(*Catalog)

	next, _ = v.Update(catalogLoadedMsg{products: []api.Product{{ID: "p1", Title: "Cached"}}, cached: true})
	v = next.(*Catalog)
	require.Len(t, v.products, 1)
	assert.True(t, v.fromCache)
	assert.False(t, v.live)
}

func TestCatalog_ErrorKeepsCachedListing(t *testing.T) {
	v := NewCatalog(newTestContext(t))

	next, _ := v.Update(catalogLoadedMsg{products: []api.Product{{ID: "p1"}}, cached: true})
	v = next.(*Catalog)

	next, cmd := v.Update(catalogLoadedMsg{err: assert.AnError})
	v = next.(*Catalog)
	assert.Len(t, v.products, 1, "cached rows survive a failed refresh")
	assert.Nil(t, cmd, "no error toast while a cached listing is shown")
}

func TestLogin_ValidatesBeforeSubmitting(t *testing.T) {
	v := NewLogin(newTestContext(t))

	// Move focus to the password field, then submit with everything empty.
	next, _ := v.Update(tea.KeyMsg{Type: tea.KeyTab})
	v = next.(*Login)
	next, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = next.(*Login)

	assert.Nil(t, cmd)
	assert.Equal(t, "Email and password are required", v.errMsg)
	assert.False(t, v.busy)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	v := NewRegister(newTestContext(t))
	v.inputs[regName].SetValue("Dev")
	v.inputs[regEmail].SetValue("dev@example.com")
	v.inputs[regPassword].SetValue("secret")
	v.inputs[regConfirm].SetValue("different")
	v.focus = regConfirm

	next, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v = next.(*Register)

	assert.Nil(t, cmd)
	assert.Equal(t, "Passwords do not match", v.errMsg)
}

func TestCart_TotalSkipsDeletedProducts(t *testing.T) {
	v := NewCart(newTestContext(t))
	v.items = []api.CartItem{
		{ID: "c1", Product: &api.Product{Price: 100}, Quantity: 2},
		{ID: "c2", Product: nil, Quantity: 1},
		{ID: "c3", Product: &api.Product{Price: 50}, Quantity: 1},
	}

	assert.Equal(t, 250.0, v.Total())
}

func TestAdminProductForm_RejectsBadNumbers(t *testing.T) {
	v := NewAdminProductForm(newTestContext(t), "")
	v.inputs[pfTitle].SetValue("Widget")
	v.inputs[pfPrice].SetValue("not-a-price")
	v.inputs[pfStock].SetValue("3")

	assert.Nil(t, v.submit())
	assert.Equal(t, "Price must be a non-negative number", v.errMsg)

	v.inputs[pfPrice].SetValue("19.99")
	v.inputs[pfStock].SetValue("-1")
	assert.Nil(t, v.submit())
	assert.Equal(t, "Stock must be a non-negative integer", v.errMsg)
}

func TestStockLabel(t *testing.T) {
	theme := styles.NewTheme()

	assert.Contains(t, stockLabel(theme, 0), "out of stock")
	assert.Contains(t, stockLabel(theme, 3), "3 left")
	assert.Contains(t, stockLabel(theme, 12), "12 in stock")
}

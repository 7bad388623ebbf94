// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/shopfront-tui/internal/api"
)

func openTestStore(t *testing.T, ttl time.Duration) *StateStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state.db"), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestKV_RoundTrip(t *testing.T) {
	store := openTestStore(t, time.Minute)

	value, err := store.Get("theme")
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, store.Set("theme", "dark"))
	value, err = store.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	require.NoError(t, store.Set("theme", "light"))
	value, err = store.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)

	require.NoError(t, store.Delete("theme"))
	value, err = store.Get("theme")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestPendingRedirect_ReadAndClear(t *testing.T) {
	store := openTestStore(t, time.Minute)

	path, err := store.ConsumePendingRedirect()
	require.NoError(t, err)
	assert.Empty(t, path)

	require.NoError(t, store.SetPendingRedirect("/cart"))

	path, err = store.ConsumePendingRedirect()
	require.NoError(t, err)
	assert.Equal(t, "/cart", path)

	// Cleared the instant it was consumed.
	path, err = store.ConsumePendingRedirect()
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestPendingRedirect_NewerWins(t *testing.T) {
	store := openTestStore(t, time.Minute)

	require.NoError(t, store.SetPendingRedirect("/cart"))
	require.NoError(t, store.SetPendingRedirect("/checkout"))

	path, err := store.ConsumePendingRedirect()
	require.NoError(t, err)
	assert.Equal(t, "/checkout", path)
}

func TestPendingRedirect_SurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")

	store, err := Open(dbPath, time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.SetPendingRedirect("/userProfile"))
	require.NoError(t, store.Close())

	store, err = Open(dbPath, time.Minute)
	require.NoError(t, err)
	defer store.Close()

	path, err := store.ConsumePendingRedirect()
	require.NoError(t, err)
	assert.Equal(t, "/userProfile", path)
}

func TestCatalogCache_RoundTrip(t *testing.T) {
	store := openTestStore(t, time.Minute)

	products := []api.Product{
		{ID: "p1", Title: "Desk Lamp", Price: 2500},
		{ID: "p2", Title: "Notebook", Price: 450},
	}
	require.NoError(t, store.CacheProducts(products))

	cached, ok, err := store.CachedProducts()
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, cached, 2)
	assert.Equal(t, "p1", cached[0].ID)
	assert.Equal(t, "Notebook", cached[1].Title)
}

func TestCatalogCache_EmptyMiss(t *testing.T) {
	store := openTestStore(t, time.Minute)

	_, ok, err := store.CachedProducts()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogCache_TTLExpiry(t *testing.T) {
	store := openTestStore(t, 50*time.Millisecond)

	require.NoError(t, store.CacheProducts([]api.Product{{ID: "p1"}}))
	time.Sleep(1100 * time.Millisecond)

	_, ok, err := store.CachedProducts()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogCache_Invalidate(t *testing.T) {
	store := openTestStore(t, time.Minute)

	require.NoError(t, store.CacheProducts([]api.Product{{ID: "p1"}}))
	require.NoError(t, store.InvalidateCatalog())

	_, ok, err := store.CachedProducts()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogCache_DisabledByZeroTTL(t *testing.T) {
	store := openTestStore(t, 0)

	require.NoError(t, store.CacheProducts([]api.Product{{ID: "p1"}}))
	_, ok, err := store.CachedProducts()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClosedStore(t *testing.T) {
	store := openTestStore(t, time.Minute)
	require.NoError(t, store.Close())

	_, err := store.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.Set("k", "v"), ErrClosed)
	_, err = store.ConsumePendingRedirect()
	assert.ErrorIs(t, err, ErrClosed)
}

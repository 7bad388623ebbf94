// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/shopfront-tui/internal/api"
)

// =============================================================================
// SCHEMA
// =============================================================================

// SchemaVersion tracks the database schema version for migrations.
const SchemaVersion = 1

const schema = `
-- Metadata table for schema version
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- Key/value table for single persisted values (pending redirect path, etc.)
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at INTEGER NOT NULL -- Unix timestamp
) WITHOUT ROWID;

-- Catalog cache: last known product list, one row per product
CREATE TABLE IF NOT EXISTS catalog_cache (
    product_id TEXT PRIMARY KEY,
    data TEXT NOT NULL,         -- JSON-encoded product
    position INTEGER NOT NULL,  -- backend ordering
    cached_at INTEGER NOT NULL  -- Unix timestamp
) WITHOUT ROWID;
`

const initMetadata = `
INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', '1');
INSERT OR IGNORE INTO metadata (key, value) VALUES ('created_at', strftime('%s', 'now'));
`

// keyPendingRedirect holds the path to return to after login.
const keyPendingRedirect = "redirectAfterLogin"

// =============================================================================
// STATE STORE
// =============================================================================

// ErrClosed is returned when the store is used after Close.
var ErrClosed = errors.New("state store is closed")

// StateStore is the client-local SQLite database.
type StateStore struct {
	db       *sql.DB
	cacheTTL time.Duration
}

// Open opens (creating if needed) the state database at path. cacheTTL
// bounds how long cached catalog rows are trusted; zero disables the
// catalog cache entirely.
func Open(path string, cacheTTL time.Duration) (*StateStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if _, err := db.Exec(initMetadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize metadata: %w", err)
	}

	return &StateStore{db: db, cacheTTL: cacheTTL}, nil
}

// Close releases the database handle.
func (s *StateStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// =============================================================================
// KEY/VALUE
// =============================================================================

// Get returns the stored value for key, or "" when absent.
func (s *StateStore) Get(key string) (string, error) {
	if s.db == nil {
		return "", ErrClosed
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *StateStore) Set(key, value string) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO kv (key, value, updated_at) VALUES (?, ?, ?)",
		key, value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *StateStore) Delete(key string) error {
	if s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// =============================================================================
// PENDING REDIRECT
// =============================================================================

// SetPendingRedirect records the path to return to after login. At most one
// path is held; a newer record replaces an older one.
func (s *StateStore) SetPendingRedirect(path string) error {
	return s.Set(keyPendingRedirect, path)
}

// ConsumePendingRedirect returns the recorded path and clears it in one
// transaction. Returns "" when none is pending.
func (s *StateStore) ConsumePendingRedirect() (string, error) {
	if s.db == nil {
		return "", ErrClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var path string
	err = tx.QueryRow("SELECT value FROM kv WHERE key = ?", keyPendingRedirect).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read pending redirect: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM kv WHERE key = ?", keyPendingRedirect); err != nil {
		return "", fmt.Errorf("failed to clear pending redirect: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return path, nil
}

// =============================================================================
// CATALOG CACHE
// =============================================================================

// CacheProducts replaces the cached catalog with products, preserving the
// backend's ordering. A zero TTL makes this a no-op.
func (s *StateStore) CacheProducts(products []api.Product) error {
	if s.db == nil {
		return ErrClosed
	}
	if s.cacheTTL <= 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM catalog_cache"); err != nil {
		return fmt.Errorf("failed to clear catalog cache: %w", err)
	}

	now := time.Now().Unix()
	for i, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to encode product %q: %w", p.ID, err)
		}
		_, err = tx.Exec(
			"INSERT OR REPLACE INTO catalog_cache (product_id, data, position, cached_at) VALUES (?, ?, ?, ?)",
			p.ID, string(data), i, now,
		)
		if err != nil {
			return fmt.Errorf("failed to cache product %q: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// CachedProducts returns the cached catalog when every row is within the
// TTL. The second return is false when the cache is empty, stale, or
// disabled.
func (s *StateStore) CachedProducts() ([]api.Product, bool, error) {
	if s.db == nil {
		return nil, false, ErrClosed
	}
	if s.cacheTTL <= 0 {
		return nil, false, nil
	}

	cutoff := time.Now().Add(-s.cacheTTL).Unix()
	var stale int
	err := s.db.QueryRow("SELECT COUNT(*) FROM catalog_cache WHERE cached_at < ?", cutoff).Scan(&stale)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check cache age: %w", err)
	}
	if stale > 0 {
		return nil, false, nil
	}

	rows, err := s.db.Query("SELECT data FROM catalog_cache ORDER BY position")
	if err != nil {
		return nil, false, fmt.Errorf("failed to read catalog cache: %w", err)
	}
	defer rows.Close()

	var products []api.Product
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, false, fmt.Errorf("failed to scan cache row: %w", err)
		}
		var p api.Product
		if err := json.Unmarshal([]byte(data), &p); err != nil {
			return nil, false, fmt.Errorf("failed to decode cached product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(products) == 0 {
		return nil, false, nil
	}
	return products, true, nil
}

// InvalidateCatalog drops all cached catalog rows. Called after any admin
// write to the product catalog.
func (s *StateStore) InvalidateCatalog() error {
	if s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.Exec("DELETE FROM catalog_cache"); err != nil {
		return fmt.Errorf("failed to invalidate catalog cache: %w", err)
	}
	return nil
}

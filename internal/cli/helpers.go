// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/shopfront-tui/internal/api"
	"github.com/jeranaias/shopfront-tui/internal/config"
	"github.com/jeranaias/shopfront-tui/internal/storage"
)

// keyAccessToken is the state-store key holding the bearer credential
// issued at login. The TUI loads it at startup so the session bootstrap
// authenticates without re-prompting.
const keyAccessToken = "accessToken"

// StatePath resolves the SQLite state file from config, defaulting to
// ~/.shopfront/state.db.
func StatePath(cfg *config.Config) (string, error) {
	if cfg.Storage.StatePath != "" {
		return cfg.Storage.StatePath, nil
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.db"), nil
}

// OpenState opens the client-local state store.
func OpenState(cfg *config.Config) (*storage.StateStore, error) {
	path, err := StatePath(cfg)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(cfg.Storage.CatalogCacheTTLMins) * time.Minute
	return storage.Open(path, ttl)
}

// NewClient builds an API client from config and installs the stored
// bearer credential when one exists.
func NewClient(cfg *config.Config, state *storage.StateStore) *api.Client {
	client := api.NewClient(cfg.API.BaseURL).
		WithTimeout(time.Duration(cfg.API.TimeoutSecs) * time.Second).
		WithRateLimit(cfg.API.RequestsPerSec, cfg.API.Burst)

	if state != nil {
		if token, err := state.Get(keyAccessToken); err == nil && token != "" {
			client.SetAccessToken(token)
		}
	}
	return client
}

// SaveAccessToken persists the bearer credential for later invocations.
func SaveAccessToken(state *storage.StateStore, token string) error {
	if token == "" {
		return nil
	}
	return state.Set(keyAccessToken, token)
}

// ForgetAccessToken removes the persisted bearer credential.
func ForgetAccessToken(state *storage.StateStore) error {
	return state.Delete(keyAccessToken)
}

// reqContext returns a bounded context for one command's backend calls.
func reqContext(cfg *config.Config) (context.Context, context.CancelFunc) {
	timeout := time.Duration(cfg.API.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// PrintJSON writes v to stdout as indented JSON.
func PrintJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// fail prints an error and exits non-zero. The backend's message is shown
// when one is present, the raw error otherwise.
func fail(err error) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+api.ErrorMessage(err, err.Error()))
	os.Exit(1)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:5001", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.AuthTimeoutSecs)
	assert.Equal(t, "/", cfg.Nav.LandingPath)
	assert.Equal(t, "/admin/dashboard", cfg.Nav.AdminLandingPath)
	assert.Equal(t, "/login", cfg.Nav.LoginPath)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
version = "1.0.0"

[api]
base_url = "https://shop.example.com"
timeout_secs = 30

[ui]
theme = "light"
currency = "USD"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSecs)
	assert.Equal(t, "light", cfg.UI.Theme)
	assert.Equal(t, "USD", cfg.UI.Currency)
	// Unset fields come from defaults.
	assert.Equal(t, 5, cfg.API.AuthTimeoutSecs)
	assert.Equal(t, "/login", cfg.Nav.LoginPath)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SHOPFRONT_API_URL", "http://127.0.0.1:9000")
	t.Setenv("SHOPFRONT_AUTH_TIMEOUT_SECS", "3")
	t.Setenv("SHOPFRONT_CURRENCY", "EUR")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://127.0.0.1:9000", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.API.AuthTimeoutSecs)
	assert.Equal(t, "EUR", cfg.UI.Currency)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad base url", func(c *Config) { c.API.BaseURL = "not a url" }},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://host" }},
		{"bad theme", func(c *Config) { c.UI.Theme = "sepia" }},
		{"relative login path", func(c *Config) { c.Nav.LoginPath = "login" }},
		{"negative rate", func(c *Config) { c.API.RequestsPerSec = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// TestConfig_ConcurrentAccess tests that Global(), SetGlobal(), and
// ReloadGlobal() can be safely called concurrently.
// Run with: go test -race -v ./internal/config/
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)

		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()

		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}

	wg.Wait()
}

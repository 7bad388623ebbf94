// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for shopfront.
//
// Supports TOML configuration with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.shopfront/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete shopfront configuration.
type Config struct {
	// General settings
	Version string `toml:"version"`

	// Backend API configuration
	API APIConfig `toml:"api"`

	// Navigation configuration
	Nav NavConfig `toml:"nav"`

	// Client-local storage configuration
	Storage StorageConfig `toml:"storage"`

	// Logging configuration
	Log LogConfig `toml:"log"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// APIConfig contains storefront backend configuration.
type APIConfig struct {
	// BaseURL is the root URL of the storefront REST backend.
	BaseURL string `toml:"base_url"`
	// TimeoutSecs is the per-request timeout in seconds.
	// The session bootstrap always uses AuthTimeoutSecs instead.
	TimeoutSecs int `toml:"timeout_secs"`
	// AuthTimeoutSecs bounds the startup session check.
	AuthTimeoutSecs int `toml:"auth_timeout_secs"`
	// RequestsPerSec caps outgoing request rate to stay under the backend's
	// throttling limits. 0 disables client-side pacing.
	RequestsPerSec float64 `toml:"requests_per_sec"`
	// Burst is the rate limiter burst size.
	Burst int `toml:"burst"`
}

// NavConfig contains view routing configuration.
type NavConfig struct {
	// LandingPath is where authenticated non-admin users land after login
	// when no pending redirect exists.
	LandingPath string `toml:"landing_path"`
	// AdminLandingPath is where admins land after login.
	AdminLandingPath string `toml:"admin_landing_path"`
	// LoginPath is the login view path. Always treated as public.
	LoginPath string `toml:"login_path"`
}

// StorageConfig contains client-local persistence configuration.
type StorageConfig struct {
	// StatePath is the SQLite file holding client-local state
	// (pending redirect path, catalog cache).
	// Empty means ~/.shopfront/state.db.
	StatePath string `toml:"state_path"`
	// CatalogCacheTTLMins is how long cached catalog rows remain usable
	// for offline display.
	CatalogCacheTTLMins int `toml:"catalog_cache_ttl_mins"`
}

// LogConfig contains client logging configuration.
type LogConfig struct {
	// Enabled turns on request/response logging.
	Enabled bool `toml:"enabled"`
	// Path is the log file (empty = ~/.shopfront/client.log).
	Path string `toml:"path"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// Currency is the ISO currency code used for price display.
	Currency string `toml:"currency"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode"`
	// PageSize is the number of rows per page in list views.
	PageSize int `toml:"page_size"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		API: APIConfig{
			BaseURL:         "http://localhost:5001",
			TimeoutSecs:     15,
			AuthTimeoutSecs: 5,
			RequestsPerSec:  10,
			Burst:           20,
		},

		Nav: NavConfig{
			LandingPath:      "/",
			AdminLandingPath: "/admin/dashboard",
			LoginPath:        "/login",
		},

		Storage: StorageConfig{
			StatePath:           "",
			CatalogCacheTTLMins: 60,
		},

		Log: LogConfig{
			Enabled: true,
			Path:    "",
		},

		UI: UIConfig{
			Theme:       "dark",
			Currency:    "LKR",
			CompactMode: false,
			PageSize:    20,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the shopfront configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".shopfront"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, err
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if c.API.AuthTimeoutSecs <= 0 {
		c.API.AuthTimeoutSecs = defaults.API.AuthTimeoutSecs
	}
	if c.API.Burst <= 0 {
		c.API.Burst = defaults.API.Burst
	}

	if c.Nav.LandingPath == "" {
		c.Nav.LandingPath = defaults.Nav.LandingPath
	}
	if c.Nav.AdminLandingPath == "" {
		c.Nav.AdminLandingPath = defaults.Nav.AdminLandingPath
	}
	if c.Nav.LoginPath == "" {
		c.Nav.LoginPath = defaults.Nav.LoginPath
	}

	if c.Storage.CatalogCacheTTLMins <= 0 {
		c.Storage.CatalogCacheTTLMins = defaults.Storage.CatalogCacheTTLMins
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.Currency == "" {
		c.UI.Currency = defaults.UI.Currency
	}
	if c.UI.PageSize <= 0 {
		c.UI.PageSize = defaults.UI.PageSize
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies SHOPFRONT_* environment variables on top of the
// loaded configuration. Environment always wins over the file.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("SHOPFRONT_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("SHOPFRONT_API_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.API.TimeoutSecs = n
		}
	}
	if v := os.Getenv("SHOPFRONT_AUTH_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.API.AuthTimeoutSecs = n
		}
	}
	if v := os.Getenv("SHOPFRONT_STATE_PATH"); v != "" {
		c.Storage.StatePath = v
	}
	if v := os.Getenv("SHOPFRONT_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("SHOPFRONT_CURRENCY"); v != "" {
		c.UI.Currency = v
	}
	if v := os.Getenv("SHOPFRONT_LOG"); v != "" {
		c.Log.Enabled = v == "1" || v == "true"
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api.base_url %q is not a valid URL", c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url scheme must be http or https, got %q", u.Scheme)
	}

	if c.API.RequestsPerSec < 0 {
		return fmt.Errorf("api.requests_per_sec must not be negative")
	}

	switch c.UI.Theme {
	case "dark", "light", "auto":
	default:
		return fmt.Errorf("ui.theme must be one of dark, light, auto; got %q", c.UI.Theme)
	}

	for name, p := range map[string]string{
		"nav.landing_path":       c.Nav.LandingPath,
		"nav.admin_landing_path": c.Nav.AdminLandingPath,
		"nav.login_path":         c.Nav.LoginPath,
	} {
		if len(p) == 0 || p[0] != '/' {
			return fmt.Errorf("%s %q must start with /", name, p)
		}
	}

	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# shopfront configuration file")
	fmt.Fprintln(file, "# Generated by shopfront - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// =============================================================================
// GLOBAL CONFIG ACCESS
// =============================================================================

var (
	globalConfig *Config
	globalMu     sync.RWMutex
)

// Global returns the global configuration, loading it on first access.
// Load failures fall back to defaults so the TUI can still start.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal replaces the global configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// ReloadGlobal re-reads the configuration from disk.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	SetGlobal(cfg)
	return nil
}

// ResetGlobalForTesting clears the global config so tests start clean.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jeranaias/shopfront-tui/internal/config"
)

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// HandleConfig implements `shopfront config [show|set|path]`.
func HandleConfig(args *Args) {
	switch args.Subcommand {
	case "", "show":
		showConfig(args)
	case "set":
		setConfig(args)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			fail(err)
		}
		fmt.Println(path)
	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args.Subcommand)
		fmt.Fprintln(os.Stderr, "Usage: shopfront config [show|set <key> <value>|path]")
		os.Exit(1)
	}
}

func showConfig(args *Args) {
	cfg := config.Global()

	if args.JSON {
		PrintJSON(cfg)
		return
	}

	fmt.Println(TitleStyle.Render("shopfront configuration"))
	fmt.Println(LabelStyle.Render("api.base_url") + ValueStyle.Render(cfg.API.BaseURL))
	fmt.Println(LabelStyle.Render("api.timeout_secs") + ValueStyle.Render(strconv.Itoa(cfg.API.TimeoutSecs)))
	fmt.Println(LabelStyle.Render("api.auth_timeout_secs") + ValueStyle.Render(strconv.Itoa(cfg.API.AuthTimeoutSecs)))
	fmt.Println(LabelStyle.Render("api.requests_per_sec") + ValueStyle.Render(strconv.FormatFloat(cfg.API.RequestsPerSec, 'f', -1, 64)))
	fmt.Println(LabelStyle.Render("nav.landing_path") + ValueStyle.Render(cfg.Nav.LandingPath))
	fmt.Println(LabelStyle.Render("nav.admin_landing_path") + ValueStyle.Render(cfg.Nav.AdminLandingPath))
	fmt.Println(LabelStyle.Render("storage.catalog_cache_ttl_mins") + ValueStyle.Render(strconv.Itoa(cfg.Storage.CatalogCacheTTLMins)))
	fmt.Println(LabelStyle.Render("log.enabled") + ValueStyle.Render(strconv.FormatBool(cfg.Log.Enabled)))
	fmt.Println(LabelStyle.Render("ui.theme") + ValueStyle.Render(cfg.UI.Theme))
	fmt.Println(LabelStyle.Render("ui.currency") + ValueStyle.Render(cfg.UI.Currency))
	fmt.Println(LabelStyle.Render("ui.page_size") + ValueStyle.Render(strconv.Itoa(cfg.UI.PageSize)))

	if path, err := config.ConfigPath(); err == nil {
		fmt.Println(DimStyle.Render("File: " + path))
	}
}

func setConfig(args *Args) {
	key, value := args.ConfigKey, args.ConfigVal
	if key == "" || value == "" {
		fmt.Fprintln(os.Stderr, "Usage: shopfront config set <key> <value>")
		fmt.Fprintln(os.Stderr, "Example: shopfront config set ui.theme light")
		os.Exit(1)
	}

	cfg := config.Global()
	if err := applyConfigValue(cfg, key, value); err != nil {
		fail(err)
	}
	if err := cfg.Validate(); err != nil {
		fail(err)
	}
	if err := config.Save(cfg); err != nil {
		fail(err)
	}
	config.SetGlobal(cfg)

	fmt.Println(SuccessStyle.Render("Set ") + ValueStyle.Render(key+" = "+value))
}

// applyConfigValue updates one dotted key on cfg.
func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "api.base_url":
		cfg.API.BaseURL = value
	case "api.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		cfg.API.TimeoutSecs = n
	case "api.auth_timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		cfg.API.AuthTimeoutSecs = n
	case "api.requests_per_sec":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 {
			return fmt.Errorf("%s must be a non-negative number", key)
		}
		cfg.API.RequestsPerSec = f
	case "nav.landing_path":
		cfg.Nav.LandingPath = value
	case "nav.admin_landing_path":
		cfg.Nav.AdminLandingPath = value
	case "storage.state_path":
		cfg.Storage.StatePath = value
	case "storage.catalog_cache_ttl_mins":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer", key)
		}
		cfg.Storage.CatalogCacheTTLMins = n
	case "log.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		cfg.Log.Enabled = b
	case "ui.theme":
		cfg.UI.Theme = value
	case "ui.currency":
		cfg.UI.Currency = value
	case "ui.page_size":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", key)
		}
		cfg.UI.PageSize = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

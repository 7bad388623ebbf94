// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config handles shopfront configuration: TOML file loading,
// environment overrides, validation, the thread-safe global accessor,
// and fsnotify-based hot reload.
package config

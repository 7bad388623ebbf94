// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses arguments and implements the non-TUI commands:
// login, logout, whoami, products, status, config, version, and help.
// Running the binary with no command starts the TUI; main.go owns that
// path and dispatches everything else here.
package cli

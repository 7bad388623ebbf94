// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the shared UI components for the shopfront
// TUI: the header, the status bar, loading spinners, toast notifications,
// and the text helpers the views lean on for tables and money.
package components

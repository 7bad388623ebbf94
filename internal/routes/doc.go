// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package routes decides what to show for a requested path.
//
// The route table is plain data: each path maps to the capability needed to
// view it (public, authenticated, admin). A single Guard consults the table
// and the current session state, in a fixed rule order, and returns one of
// five decisions: suspend, render, redirect to login, forbidden, or not
// found. The guard never renders anything itself, which keeps the routing
// core testable without a terminal.
//
// When an unauthenticated user is bounced to login, the path they asked for
// is remembered through a RedirectStore and consumed (read-and-clear) after
// the next successful login, so they land where they were headed.
package routes

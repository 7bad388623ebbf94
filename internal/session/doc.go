// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns authentication state for the whole application.
//
// A single Store resolves "who is using the app" against the backend at
// startup, tracks the result through a small phase machine, and is the only
// component allowed to mutate session state or the bearer credential. Views
// read immutable State snapshots and report login results back through the
// Store; they never touch the credential themselves.
//
// # Phases
//
//	Idle -> Authenticating -> Authenticated | Anonymous | Failed
//
// Authenticated, Anonymous, and Failed are rest states: only an explicit
// login, logout, or re-bootstrap moves the machine again. A Failed phase
// carries a transient error that clears itself after a short delay; the
// phase itself never auto-advances.
//
// # Usage
//
//	store := session.NewStore(client, session.DefaultConfig())
//	store.Subscribe(func(st session.State) { program.Send(session.ChangedMsg{State: st}) })
//	state := store.Bootstrap(ctx)
//
// Each bootstrap and logout bumps an internal epoch; a check-auth response
// that resolves after a newer epoch began is discarded, so a slow startup
// probe can never resurrect a session the user already logged out of.
package session

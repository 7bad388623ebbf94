// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// ChangedMsg is sent whenever session state changes.
type ChangedMsg struct {
	State State
}

// LoginResultMsg is sent when an explicit login attempt resolves.
type LoginResultMsg struct {
	State State
}

// LoggedOutMsg is sent after a logout completes locally.
type LoggedOutMsg struct {
	State State
}

// BootstrapCmd runs the startup session check and reports the resulting
// state. Invoke once from the root model's Init.
func (s *Store) BootstrapCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return ChangedMsg{State: s.Bootstrap(ctx)}
	}
}

// LoginCmd attempts a login and reports the outcome through the store. The
// store moves to Authenticating before the request leaves.
func (s *Store) LoginCmd(ctx context.Context, email, password string) tea.Cmd {
	s.BeginLogin()
	return func() tea.Msg {
		user, err := s.client.Login(ctx, email, password)
		return LoginResultMsg{State: s.ReportLogin(user, err)}
	}
}

// LogoutCmd clears the session.
func (s *Store) LogoutCmd(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return LoggedOutMsg{State: s.Logout(ctx)}
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package views contains the storefront's screens. Each view is a small
// Bubble Tea sub-model behind a common interface; the root model decides
// which one is visible by consulting the route guard, so no view ever
// checks authorization itself.
package views

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopfront-tui/internal/api"
	"github.com/jeranaias/shopfront-tui/internal/session"
	"github.com/jeranaias/shopfront-tui/internal/storage"
	"github.com/jeranaias/shopfront-tui/internal/ui/components"
	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
)

// requestTimeout bounds every backend call a view issues.
const requestTimeout = 15 * time.Second

// Context carries the shared collaborators every view needs. The root model
// builds one at startup and hands it to each view constructor.
type Context struct {
	Theme    *styles.Theme
	Client   *api.Client
	Session  *session.Store
	State    *storage.StateStore
	Currency string
	PageSize int
}

// View is one screen of the application.
type View interface {
	// Title is shown in the header.
	Title() string

	// Init returns the view's initial command (usually a fetch).
	Init() tea.Cmd

	// Update handles a message and returns the (possibly replaced) view.
	Update(msg tea.Msg) (View, tea.Cmd)

	// View renders the screen into the given area.
	View(width, height int) string
}

// NavigateMsg asks the root model to navigate to a path. The root consults
// the route guard before switching views.
type NavigateMsg struct {
	Path string
}

// ToastMsg asks the root model to show a toast.
type ToastMsg struct {
	Toast components.Toast
}

// Navigate returns a command that requests navigation.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}

// ShowError returns a command that surfaces an error toast with the
// backend's message when available.
func ShowError(err error, fallback string) tea.Cmd {
	msg := api.ErrorMessage(err, fallback)
	return func() tea.Msg {
		return ToastMsg{Toast: components.NewErrorToast(msg)}
	}
}

// ShowSuccess returns a command that surfaces a success toast.
func ShowSuccess(message string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Toast: components.NewSuccessToast(message)}
	}
}

// reqContext returns a bounded context for one backend request.
func reqContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

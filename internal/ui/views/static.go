// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopfront-tui/internal/routes"
)

// =============================================================================
// STATIC VIEWS
// =============================================================================

// Forbidden is shown when an authenticated user lacks the required
// capability. It never redirects; the user backs out themselves.
type Forbidden struct {
	ctx *Context
}

// NewForbidden creates the forbidden view.
func NewForbidden(ctx *Context) *Forbidden {
	return &Forbidden{ctx: ctx}
}

// Title implements View.
func (v *Forbidden) Title() string { return "Forbidden" }

// Init implements View.
func (v *Forbidden) Init() tea.Cmd { return nil }

// Update implements View.
func (v *Forbidden) Update(msg tea.Msg) (View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter":
			return v, Navigate(routes.PathHome)
		}
	}
	return v, nil
}

// View implements View.
func (v *Forbidden) View(width, height int) string {
	theme := v.ctx.Theme
	return theme.Forbidden.Render("403  You don't have access to this page.") +
		"\n" + theme.FormHint.Render("[esc] back to the store")
}

// NotFound is shown for unknown paths.
type NotFound struct {
	ctx  *Context
	path string
}

// NewNotFound creates the not-found view.
func NewNotFound(ctx *Context, path string) *NotFound {
	return &NotFound{ctx: ctx, path: path}
}

// Title implements View.
func (v *NotFound) Title() string { return "Not found" }

// Init implements View.
func (v *NotFound) Init() tea.Cmd { return nil }

// Update implements View.
func (v *NotFound) Update(msg tea.Msg) (View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "enter":
			return v, Navigate(routes.PathHome)
		}
	}
	return v, nil
}

// View implements View.
func (v *NotFound) View(width, height int) string {
	theme := v.ctx.Theme
	return theme.EmptyState.Render("404  Nothing at "+v.path) +
		"\n" + theme.FormHint.Render("[esc] back to the store")
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopfront-tui/internal/api"
	"github.com/jeranaias/shopfront-tui/internal/ui/components"
)

// =============================================================================
// ADMIN USER LIST
// =============================================================================

// adminUsersLoadedMsg carries the registered accounts.
type adminUsersLoadedMsg struct {
	users []api.User
	err   error
}

// userDeletedMsg signals a delete finished.
type userDeletedMsg struct {
	err error
}

// AdminUsers lists registered accounts and deletes them.
type AdminUsers struct {
	ctx     *Context
	users   []api.User
	cursor  int
	loading bool
}

// NewAdminUsers creates the admin user view.
func NewAdminUsers(ctx *Context) *AdminUsers {
	return &AdminUsers{ctx: ctx, loading: true}
}

// Title implements View.
func (v *AdminUsers) Title() string { return "Manage users" }

// Init implements View.
func (v *AdminUsers) Init() tea.Cmd {
	client := v.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		users, err := client.ListUsers(ctx)
		return adminUsersLoadedMsg{users: users, err: err}
	}
}

// Update implements View.
func (v *AdminUsers) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case adminUsersLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, ShowError(msg.err, "Could not load users")
		}
		v.users = msg.users
		if v.cursor >= len(v.users) {
			v.cursor = 0
		}
		return v, nil

	case userDeletedMsg:
		if msg.err != nil {
			return v, tea.Batch(ShowError(msg.err, "Could not delete user"), v.Init())
		}
		return v, tea.Batch(ShowSuccess("User deleted"), v.Init())

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.users)-1 {
				v.cursor++
			}
		case "d", "delete":
			if v.cursor < len(v.users) {
				return v, v.deleteUser(v.users[v.cursor])
			}
		case "r":
			v.loading = true
			return v, v.Init()
		case "esc":
			return v, Navigate("/admin/dashboard")
		}
	}
	return v, nil
}

func (v *AdminUsers) deleteUser(user api.User) tea.Cmd {
	// Deleting yourself from inside the admin panel is a mistake every time.
	if st := v.ctx.Session.Snapshot(); st.User != nil && st.User.ID == user.ID {
		return ShowError(nil, "You cannot delete your own account")
	}
	client := v.ctx.Client
	id := user.ID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		return userDeletedMsg{err: client.DeleteUser(ctx, id)}
	}
}

// View implements View.
func (v *AdminUsers) View(width, height int) string {
	theme := v.ctx.Theme

	if v.loading {
		return theme.EmptyState.Render("Loading users...")
	}
	if len(v.users) == 0 {
		return theme.EmptyState.Render("No registered users.")
	}

	nameW := 24
	emailW := width - nameW - 10
	if emailW < 20 {
		emailW = 20
	}

	var b strings.Builder
	header := components.PadRight("NAME", nameW) +
		components.PadRight("EMAIL", emailW) + "ROLE"
	b.WriteString(theme.TableHeader.Render(header))
	b.WriteString("\n")

	for i, user := range v.users {
		name := user.Name
		if name == "" {
			name = user.ID
		}
		role := "customer"
		if user.IsAdmin {
			role = "admin"
		}
		line := components.PadRight(name, nameW) +
			components.PadRight(user.Email, emailW)

		if i == v.cursor {
			b.WriteString(theme.RowSelected.Render("> " + line))
		} else {
			b.WriteString(theme.Row.Render("  " + line))
		}
		if user.IsAdmin {
			b.WriteString(theme.HeaderAdmin.Render(role))
		} else {
			b.WriteString(theme.Row.Render(role))
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.FormHint.Render("[d] delete  [r] refresh  [esc] dashboard"))
	return b.String()
}

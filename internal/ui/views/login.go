// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopfront-tui/internal/routes"
	"github.com/jeranaias/shopfront-tui/internal/session"
)

// =============================================================================
// LOGIN VIEW
// =============================================================================

// Login is the sign-in form. On success the root model consults the guard's
// post-login protocol to decide where to land.
type Login struct {
	ctx    *Context
	email  textinput.Model
	pass   textinput.Model
	focus  int
	busy   bool
	errMsg string
}

// NewLogin creates the login view.
func NewLogin(ctx *Context) *Login {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.CharLimit = 128
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '*'

	return &Login{ctx: ctx, email: email, pass: pass}
}

// Title implements View.
func (v *Login) Title() string { return "Sign in" }

// Init implements View.
func (v *Login) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (v *Login) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case session.LoginResultMsg:
		v.busy = false
		if msg.State.Err != nil {
			v.errMsg = msg.State.Err.Message
			return v, nil
		}
		// Success: the root model handles the post-login redirect.
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			v.toggleFocus()
			return v, nil
		case "enter":
			if v.focus == 0 {
				v.toggleFocus()
				return v, nil
			}
			return v, v.submit()
		case "esc":
			return v, Navigate(routes.PathHome)
		case "ctrl+r":
			return v, Navigate(routes.PathRegister)
		}
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.email, cmd = v.email.Update(msg)
	} else {
		v.pass, cmd = v.pass.Update(msg)
	}
	return v, cmd
}

func (v *Login) toggleFocus() {
	if v.focus == 0 {
		v.focus = 1
		v.email.Blur()
		v.pass.Focus()
	} else {
		v.focus = 0
		v.pass.Blur()
		v.email.Focus()
	}
}

func (v *Login) submit() tea.Cmd {
	email := strings.TrimSpace(v.email.Value())
	password := v.pass.Value()
	if email == "" || password == "" {
		v.errMsg = "Email and password are required"
		return nil
	}

	v.busy = true
	v.errMsg = ""
	return v.ctx.Session.LoginCmd(context.Background(), email, password)
}

// View implements View.
func (v *Login) View(width, height int) string {
	theme := v.ctx.Theme

	var b strings.Builder
	b.WriteString(theme.Title.Render("Sign in to shopfront"))
	b.WriteString("\n\n")
	b.WriteString(theme.FormLabel.Render("Email"))
	b.WriteString("\n")
	b.WriteString(v.email.View())
	b.WriteString("\n\n")
	b.WriteString(theme.FormLabel.Render("Password"))
	b.WriteString("\n")
	b.WriteString(v.pass.View())
	b.WriteString("\n\n")

	if v.busy {
		b.WriteString(theme.Subtitle.Render("Signing in..."))
	} else if v.errMsg != "" {
		b.WriteString(theme.FormError.Render(v.errMsg))
	} else {
		b.WriteString(theme.FormHint.Render("[enter] sign in  [ctrl+r] create account  [esc] back"))
	}

	return b.String()
}

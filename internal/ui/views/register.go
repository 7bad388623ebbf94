// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopfront-tui/internal/api"
	"github.com/jeranaias/shopfront-tui/internal/routes"
)

// =============================================================================
// REGISTER VIEW
// =============================================================================

// registerResultMsg carries the signup outcome.
type registerResultMsg struct {
	err error
}

// Register is the account creation form.
type Register struct {
	ctx    *Context
	inputs []textinput.Model
	focus  int
	busy   bool
	errMsg string
}

const (
	regName = iota
	regEmail
	regPassword
	regConfirm
)

// NewRegister creates the registration view.
func NewRegister(ctx *Context) *Register {
	labels := []string{"name", "email", "password", "confirm password"}
	inputs := make([]textinput.Model, len(labels))
	for i, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 128
		if i >= regPassword {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '*'
		}
		inputs[i] = in
	}
	inputs[regName].Focus()

	return &Register{ctx: ctx, inputs: inputs}
}

// Title implements View.
func (v *Register) Title() string { return "Create account" }

// Init implements View.
func (v *Register) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (v *Register) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		v.busy = false
		if msg.err != nil {
			v.errMsg = api.ErrorMessage(msg.err, "Could not create account")
			return v, nil
		}
		return v, tea.Batch(
			ShowSuccess("Account created. Sign in to continue."),
			Navigate(routes.PathLogin),
		)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "down":
			v.setFocus(v.focus + 1)
			return v, nil
		case "shift+tab", "up":
			v.setFocus(v.focus - 1)
			return v, nil
		case "enter":
			if v.focus < regConfirm {
				v.setFocus(v.focus + 1)
				return v, nil
			}
			return v, v.submit()
		case "esc":
			return v, Navigate(routes.PathLogin)
		}
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *Register) setFocus(i int) {
	if i < 0 {
		i = len(v.inputs) - 1
	}
	if i >= len(v.inputs) {
		i = 0
	}
	v.inputs[v.focus].Blur()
	v.focus = i
	v.inputs[v.focus].Focus()
}

func (v *Register) submit() tea.Cmd {
	name := strings.TrimSpace(v.inputs[regName].Value())
	email := strings.TrimSpace(v.inputs[regEmail].Value())
	password := v.inputs[regPassword].Value()
	confirm := v.inputs[regConfirm].Value()

	switch {
	case name == "" || email == "" || password == "":
		v.errMsg = "All fields are required"
		return nil
	case password != confirm:
		v.errMsg = "Passwords do not match"
		return nil
	}

	v.busy = true
	v.errMsg = ""

	client := v.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		err := client.Signup(ctx, name, email, password)
		return registerResultMsg{err: err}
	}
}

// View implements View.
func (v *Register) View(width, height int) string {
	theme := v.ctx.Theme
	labels := []string{"Name", "Email", "Password", "Confirm password"}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Create your account"))
	b.WriteString("\n\n")
	for i, in := range v.inputs {
		b.WriteString(theme.FormLabel.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n\n")
	}

	if v.busy {
		b.WriteString(theme.Subtitle.Render("Creating account..."))
	} else if v.errMsg != "" {
		b.WriteString(theme.FormError.Render(v.errMsg))
	} else {
		b.WriteString(theme.FormHint.Render("[enter] next/submit  [esc] back to sign in"))
	}

	return b.String()
}

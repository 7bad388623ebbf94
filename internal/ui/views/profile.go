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
// PROFILE VIEW
// =============================================================================

// addressesLoadedMsg carries the fetched address book.
type addressesLoadedMsg struct {
	addresses []api.Address
	err       error
}

// addressChangedMsg signals an address mutation finished.
type addressChangedMsg struct {
	err error
}

// Address form field order.
var addressFields = []string{"street", "city", "state", "country", "postal code", "phone number"}

// Profile shows the signed-in identity and manages the address book.
type Profile struct {
	ctx       *Context
	addresses []api.Address
	cursor    int
	loading   bool

	// Inline add-address form
	adding bool
	inputs []textinput.Model
	focus  int
	errMsg string
}

// NewProfile creates the profile view.
func NewProfile(ctx *Context) *Profile {
	return &Profile{ctx: ctx, loading: true}
}

// Title implements View.
func (v *Profile) Title() string { return "Profile" }

// Init implements View.
func (v *Profile) Init() tea.Cmd {
	return v.fetch()
}

func (v *Profile) fetch() tea.Cmd {
	st := v.ctx.Session.Snapshot()
	if st.User == nil {
		return nil
	}
	client := v.ctx.Client
	userID := st.User.ID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		addresses, err := client.ListAddresses(ctx, userID)
		return addressesLoadedMsg{addresses: addresses, err: err}
	}
}

// Update implements View.
func (v *Profile) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case addressesLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, ShowError(msg.err, "Could not load addresses")
		}
		v.addresses = msg.addresses
		if v.cursor >= len(v.addresses) {
			v.cursor = 0
		}
		return v, nil

	case addressChangedMsg:
		if msg.err != nil {
			return v, tea.Batch(ShowError(msg.err, "Could not save address"), v.fetch())
		}
		v.adding = false
		return v, v.fetch()

	case tea.KeyMsg:
		if v.adding {
			return v.updateForm(msg)
		}
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.addresses)-1 {
				v.cursor++
			}
		case "n", "a":
			v.startAdding()
			return v, textinput.Blink
		case "d", "delete":
			if v.cursor < len(v.addresses) {
				return v, v.deleteAddress(v.addresses[v.cursor].ID)
			}
		case "esc":
			return v, Navigate(routes.PathHome)
		}
	}
	return v, nil
}

func (v *Profile) startAdding() {
	v.adding = true
	v.focus = 0
	v.errMsg = ""
	v.inputs = make([]textinput.Model, len(addressFields))
	for i, label := range addressFields {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 128
		v.inputs[i] = in
	}
	v.inputs[0].Focus()
}

func (v *Profile) updateForm(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.adding = false
		return v, nil
	case "tab", "down":
		v.moveFocus(1)
		return v, nil
	case "shift+tab", "up":
		v.moveFocus(-1)
		return v, nil
	case "enter":
		if v.focus < len(v.inputs)-1 {
			v.moveFocus(1)
			return v, nil
		}
		return v, v.submitAddress()
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *Profile) moveFocus(delta int) {
	v.inputs[v.focus].Blur()
	v.focus = (v.focus + delta + len(v.inputs)) % len(v.inputs)
	v.inputs[v.focus].Focus()
}

func (v *Profile) submitAddress() tea.Cmd {
	st := v.ctx.Session.Snapshot()
	if st.User == nil {
		return nil
	}

	addr := api.Address{
		UserID:      st.User.ID,
		Street:      strings.TrimSpace(v.inputs[0].Value()),
		City:        strings.TrimSpace(v.inputs[1].Value()),
		State:       strings.TrimSpace(v.inputs[2].Value()),
		Country:     strings.TrimSpace(v.inputs[3].Value()),
		PostalCode:  strings.TrimSpace(v.inputs[4].Value()),
		PhoneNumber: strings.TrimSpace(v.inputs[5].Value()),
	}
	if addr.Street == "" || addr.City == "" {
		v.errMsg = "Street and city are required"
		return nil
	}

	client := v.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		_, err := client.CreateAddress(ctx, addr)
		return addressChangedMsg{err: err}
	}
}

func (v *Profile) deleteAddress(id string) tea.Cmd {
	client := v.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		return addressChangedMsg{err: client.DeleteAddress(ctx, id)}
	}
}

// View implements View.
func (v *Profile) View(width, height int) string {
	theme := v.ctx.Theme
	st := v.ctx.Session.Snapshot()

	var b strings.Builder
	if st.User != nil {
		b.WriteString(theme.Title.Render("Account"))
		b.WriteString("\n")
		label := st.User.Email
		if label == "" {
			label = st.User.ID
		}
		b.WriteString(theme.Row.Render("  " + label))
		if st.User.IsAdmin {
			b.WriteString(" " + theme.HeaderAdmin.Render("[admin]"))
		}
		b.WriteString("\n\n")
	}

	if v.adding {
		b.WriteString(theme.Title.Render("New address"))
		b.WriteString("\n")
		labels := []string{"Street", "City", "State", "Country", "Postal code", "Phone"}
		for i, in := range v.inputs {
			b.WriteString(theme.FormLabel.Render(labels[i]))
			b.WriteString("  ")
			b.WriteString(in.View())
			b.WriteString("\n")
		}
		if v.errMsg != "" {
			b.WriteString(theme.FormError.Render(v.errMsg))
			b.WriteString("\n")
		}
		b.WriteString(theme.FormHint.Render("[enter] next/save  [esc] cancel"))
		return b.String()
	}

	b.WriteString(theme.Title.Render("Addresses"))
	b.WriteString("\n")
	if v.loading {
		b.WriteString(theme.EmptyState.Render("Loading..."))
	} else if len(v.addresses) == 0 {
		b.WriteString(theme.EmptyState.Render("No addresses yet. Press [n] to add one."))
	} else {
		for i, addr := range v.addresses {
			line := addr.Street + ", " + addr.City
			if addr.PostalCode != "" {
				line += " " + addr.PostalCode
			}
			if addr.Country != "" {
				line += ", " + addr.Country
			}
			if i == v.cursor {
				b.WriteString(theme.RowSelected.Render("> " + line))
			} else {
				b.WriteString(theme.Row.Render("  " + line))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(theme.FormHint.Render("[n] new address  [d] delete  [esc] back"))
	return b.String()
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopfront-tui/internal/api"
	"github.com/jeranaias/shopfront-tui/internal/routes"
	"github.com/jeranaias/shopfront-tui/internal/ui/components"
)

// =============================================================================
// CART VIEW
// =============================================================================

// cartLoadedMsg carries the fetched cart lines.
type cartLoadedMsg struct {
	items []api.CartItem
	err   error
}

// cartChangedMsg signals a mutation finished; the cart refetches.
type cartChangedMsg struct {
	err error
}

// Cart lists the signed-in user's cart and supports quantity edits.
type Cart struct {
	ctx     *Context
	items   []api.CartItem
	cursor  int
	loading bool
}

// NewCart creates the cart view.
func NewCart(ctx *Context) *Cart {
	return &Cart{ctx: ctx, loading: true}
}

// Title implements View.
func (v *Cart) Title() string { return "Cart" }

// Init implements View.
func (v *Cart) Init() tea.Cmd {
	return v.fetch()
}

func (v *Cart) fetch() tea.Cmd {
	st := v.ctx.Session.Snapshot()
	if st.User == nil {
		return nil
	}
	client := v.ctx.Client
	userID := st.User.ID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		items, err := client.ListCart(ctx, userID)
		return cartLoadedMsg{items: items, err: err}
	}
}

// Update implements View.
func (v *Cart) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case cartLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, ShowError(msg.err, "Could not load cart")
		}
		v.items = msg.items
		if v.cursor >= len(v.items) {
			v.cursor = 0
		}
		return v, nil

	case cartChangedMsg:
		if msg.err != nil {
			return v, tea.Batch(ShowError(msg.err, "Could not update cart"), v.fetch())
		}
		return v, v.fetch()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.items)-1 {
				v.cursor++
			}
		case "+", "=":
			if item := v.selected(); item != nil {
				return v, v.setQuantity(item.ID, item.Quantity+1)
			}
		case "-":
			if item := v.selected(); item != nil && item.Quantity > 1 {
				return v, v.setQuantity(item.ID, item.Quantity-1)
			}
		case "d", "delete":
			if item := v.selected(); item != nil {
				return v, v.remove(item.ID)
			}
		case "enter", "c":
			if len(v.items) > 0 {
				return v, Navigate(routes.PathCheckout)
			}
		case "esc":
			return v, Navigate(routes.PathHome)
		}
	}
	return v, nil
}

func (v *Cart) selected() *api.CartItem {
	if v.cursor < 0 || v.cursor >= len(v.items) {
		return nil
	}
	return &v.items[v.cursor]
}

func (v *Cart) setQuantity(itemID string, quantity int) tea.Cmd {
	client := v.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		return cartChangedMsg{err: client.UpdateCartQuantity(ctx, itemID, quantity)}
	}
}

func (v *Cart) remove(itemID string) tea.Cmd {
	client := v.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		return cartChangedMsg{err: client.RemoveCartItem(ctx, itemID)}
	}
}

// Total sums the cart lines.
func (v *Cart) Total() float64 {
	var total float64
	for _, item := range v.items {
		if item.Product != nil {
			total += item.Product.Price * float64(item.Quantity)
		}
	}
	return total
}

// View implements View.
func (v *Cart) View(width, height int) string {
	theme := v.ctx.Theme

	if v.loading {
		return theme.EmptyState.Render("Loading cart...")
	}
	if len(v.items) == 0 {
		return theme.EmptyState.Render("Your cart is empty. Browse products with [esc].")
	}

	titleW := width - 30
	if titleW < 16 {
		titleW = 16
	}

	var b strings.Builder
	header := components.PadRight("ITEM", titleW) +
		components.PadRight("QTY", 6) +
		components.PadRight("PRICE", 12) + "LINE"
	b.WriteString(theme.TableHeader.Render(header))
	b.WriteString("\n")

	for i, item := range v.items {
		title, price := "(unavailable)", 0.0
		if item.Product != nil {
			title = item.Product.Title
			price = item.Product.Price
		}
		line := components.PadRight(title, titleW) +
			components.PadRight(components.FormatQuantity(item.Quantity), 6) +
			components.PadRight(components.FormatMoney(price, v.ctx.Currency), 12) +
			components.FormatMoney(price*float64(item.Quantity), v.ctx.Currency)

		if i == v.cursor {
			b.WriteString(theme.RowSelected.Render("> " + line))
		} else {
			b.WriteString(theme.Row.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("total: "))
	b.WriteString(theme.Price.Render(components.FormatMoney(v.Total(), v.ctx.Currency)))
	b.WriteString("\n")
	b.WriteString(theme.FormHint.Render("[+/-] quantity  [d] remove  [enter] checkout  [esc] keep shopping"))

	return b.String()
}

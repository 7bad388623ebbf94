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
// CHECKOUT VIEW
// =============================================================================

// checkoutLoadedMsg carries the cart and addresses needed to place an order.
type checkoutLoadedMsg struct {
	items     []api.CartItem
	addresses []api.Address
	err       error
}

// orderPlacedMsg signals the order submission outcome.
type orderPlacedMsg struct {
	err error
}

// paymentModes the backend accepts.
var paymentModes = []string{"COD", "Card"}

// Checkout walks the user through address and payment selection, then
// places the order and clears the cart.
type Checkout struct {
	ctx        *Context
	items      []api.CartItem
	addresses  []api.Address
	addrCursor int
	payCursor  int
	loading    bool
	placing    bool
}

// NewCheckout creates the checkout view.
func NewCheckout(ctx *Context) *Checkout {
	return &Checkout{ctx: ctx, loading: true}
}

// Title implements View.
func (v *Checkout) Title() string { return "Checkout" }

// Init implements View.
func (v *Checkout) Init() tea.Cmd {
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
		if err != nil {
			return checkoutLoadedMsg{err: err}
		}
		addresses, err := client.ListAddresses(ctx, userID)
		if err != nil {
			return checkoutLoadedMsg{err: err}
		}
		return checkoutLoadedMsg{items: items, addresses: addresses}
	}
}

// Update implements View.
func (v *Checkout) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case checkoutLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, tea.Batch(
				ShowError(msg.err, "Could not load checkout"),
				Navigate(routes.PathCart),
			)
		}
		v.items = msg.items
		v.addresses = msg.addresses
		return v, nil

	case orderPlacedMsg:
		v.placing = false
		if msg.err != nil {
			return v, ShowError(msg.err, "Could not place order")
		}
		return v, tea.Batch(
			ShowSuccess("Order placed"),
			Navigate(routes.PathOrders),
		)

	case tea.KeyMsg:
		if v.placing {
			return v, nil
		}
		switch msg.String() {
		case "up", "k":
			if v.addrCursor > 0 {
				v.addrCursor--
			}
		case "down", "j":
			if v.addrCursor < len(v.addresses)-1 {
				v.addrCursor++
			}
		case "p", "tab":
			v.payCursor = (v.payCursor + 1) % len(paymentModes)
		case "enter":
			return v, v.placeOrder()
		case "a":
			return v, Navigate(routes.PathProfile)
		case "esc":
			return v, Navigate(routes.PathCart)
		}
	}
	return v, nil
}

func (v *Checkout) total() float64 {
	var total float64
	for _, item := range v.items {
		if item.Product != nil {
			total += item.Product.Price * float64(item.Quantity)
		}
	}
	return total
}

func (v *Checkout) placeOrder() tea.Cmd {
	st := v.ctx.Session.Snapshot()
	if st.User == nil || len(v.items) == 0 {
		return nil
	}
	if len(v.addresses) == 0 {
		return func() tea.Msg {
			return ToastMsg{Toast: components.NewWarningToast("Add a delivery address first ([a] profile)")}
		}
	}

	orderItems := make([]api.OrderItem, 0, len(v.items))
	for _, item := range v.items {
		if item.Product == nil {
			continue
		}
		orderItems = append(orderItems, api.OrderItem{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		})
	}

	input := api.OrderInput{
		UserID:      st.User.ID,
		Items:       orderItems,
		Address:     &v.addresses[v.addrCursor],
		Status:      api.OrderStatusPending,
		PaymentMode: paymentModes[v.payCursor],
		Total:       v.total(),
	}

	v.placing = true
	client := v.ctx.Client
	userID := st.User.ID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()

		if err := client.CreateOrder(ctx, input); err != nil {
			return orderPlacedMsg{err: err}
		}
		// Cart clear failure is recoverable; the order is already in.
		_ = client.ClearCart(ctx, userID)
		return orderPlacedMsg{}
	}
}

// View implements View.
func (v *Checkout) View(width, height int) string {
	theme := v.ctx.Theme

	if v.loading {
		return theme.EmptyState.Render("Loading checkout...")
	}
	if len(v.items) == 0 {
		return theme.EmptyState.Render("Nothing to check out.")
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Checkout"))
	b.WriteString("\n\n")

	b.WriteString(theme.FormLabel.Render("Items"))
	b.WriteString("\n")
	for _, item := range v.items {
		if item.Product == nil {
			continue
		}
		b.WriteString("  " + components.PadRight(item.Product.Title, width-26) +
			components.PadRight("x"+components.FormatQuantity(item.Quantity), 6) +
			components.FormatMoney(item.Product.Price*float64(item.Quantity), v.ctx.Currency))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.FormLabel.Render("Deliver to"))
	b.WriteString("\n")
	if len(v.addresses) == 0 {
		b.WriteString(theme.FormError.Render("  No addresses on file. Press [a] to add one in your profile."))
		b.WriteString("\n")
	}
	for i, addr := range v.addresses {
		line := addr.Street + ", " + addr.City + " " + addr.PostalCode
		if i == v.addrCursor {
			b.WriteString(theme.RowSelected.Render("> " + line))
		} else {
			b.WriteString(theme.Row.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.FormLabel.Render("Payment"))
	b.WriteString("\n  ")
	for i, mode := range paymentModes {
		if i == v.payCursor {
			b.WriteString(theme.ButtonActive.Render(mode))
		} else {
			b.WriteString(theme.Button.Render(mode))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Render("total: "))
	b.WriteString(theme.Price.Render(components.FormatMoney(v.total(), v.ctx.Currency)))
	b.WriteString("\n")

	if v.placing {
		b.WriteString(theme.Subtitle.Render("Placing order..."))
	} else {
		b.WriteString(theme.FormHint.Render("[up/down] address  [p] payment  [enter] place order  [esc] back"))
	}

	return b.String()
}

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
// ADMIN ORDER LIST
// =============================================================================

// adminOrdersLoadedMsg carries all orders in the store.
type adminOrdersLoadedMsg struct {
	orders []api.Order
	err    error
}

// orderAdvancedMsg signals a status change finished.
type orderAdvancedMsg struct {
	err error
}

// AdminOrders lists every order and advances them through the fulfillment
// pipeline: Pending -> Dispatched -> Delivered.
type AdminOrders struct {
	ctx     *Context
	orders  []api.Order
	cursor  int
	loading bool
}

// NewAdminOrders creates the admin order view.
func NewAdminOrders(ctx *Context) *AdminOrders {
	return &AdminOrders{ctx: ctx, loading: true}
}

// Title implements View.
func (v *AdminOrders) Title() string { return "Manage orders" }

// Init implements View.
func (v *AdminOrders) Init() tea.Cmd {
	client := v.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		orders, err := client.ListOrders(ctx)
		return adminOrdersLoadedMsg{orders: orders, err: err}
	}
}

// Update implements View.
func (v *AdminOrders) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case adminOrdersLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, ShowError(msg.err, "Could not load orders")
		}
		v.orders = msg.orders
		if v.cursor >= len(v.orders) {
			v.cursor = 0
		}
		return v, nil

	case orderAdvancedMsg:
		if msg.err != nil {
			return v, tea.Batch(ShowError(msg.err, "Could not update order"), v.Init())
		}
		return v, tea.Batch(ShowSuccess("Order updated"), v.Init())

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.orders)-1 {
				v.cursor++
			}
		case "enter", "s":
			if v.cursor < len(v.orders) {
				return v, v.advance(v.orders[v.cursor])
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

func (v *AdminOrders) advance(order api.Order) tea.Cmd {
	next := api.NextOrderStatus(order.Status)
	if next == "" {
		return ShowSuccess("Order already delivered")
	}
	client := v.ctx.Client
	id := order.ID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		return orderAdvancedMsg{err: client.UpdateOrderStatus(ctx, id, next)}
	}
}

// View implements View.
func (v *AdminOrders) View(width, height int) string {
	theme := v.ctx.Theme

	if v.loading {
		return theme.EmptyState.Render("Loading orders...")
	}
	if len(v.orders) == 0 {
		return theme.EmptyState.Render("No orders have been placed yet.")
	}

	var b strings.Builder
	header := components.PadRight("ORDER", 14) +
		components.PadRight("PLACED", 12) +
		components.PadRight("CUSTOMER", 14) +
		components.PadRight("TOTAL", 14) +
		components.PadRight("PAYMENT", 9) + "STATUS"
	b.WriteString(theme.TableHeader.Render(header))
	b.WriteString("\n")

	for i, order := range v.orders {
		placed := ""
		if !order.CreatedAt.IsZero() {
			placed = order.CreatedAt.Format("2006-01-02")
		}
		line := components.PadRight(components.Truncate(order.ID, 12), 14) +
			components.PadRight(placed, 12) +
			components.PadRight(components.Truncate(order.UserID, 12), 14) +
			components.PadRight(components.FormatMoney(order.Total, v.ctx.Currency), 14) +
			components.PadRight(order.PaymentMode, 9)

		if i == v.cursor {
			b.WriteString(theme.RowSelected.Render("> " + line))
		} else {
			b.WriteString(theme.Row.Render("  " + line))
		}
		b.WriteString(" " + statusBadge(order.Status))
		b.WriteString("\n")
	}

	b.WriteString(theme.FormHint.Render("[enter] advance status  [r] refresh  [esc] dashboard"))
	return b.String()
}

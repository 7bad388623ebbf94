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
// ORDER HISTORY VIEW
// =============================================================================

// ordersLoadedMsg carries the fetched order history.
type ordersLoadedMsg struct {
	orders []api.Order
	err    error
}

// Orders shows the signed-in user's order history, newest first.
type Orders struct {
	ctx     *Context
	orders  []api.Order
	cursor  int
	loading bool
}

// NewOrders creates the order history view.
func NewOrders(ctx *Context) *Orders {
	return &Orders{ctx: ctx, loading: true}
}

// Title implements View.
func (v *Orders) Title() string { return "Orders" }

// Init implements View.
func (v *Orders) Init() tea.Cmd {
	st := v.ctx.Session.Snapshot()
	if st.User == nil {
		return nil
	}
	client := v.ctx.Client
	userID := st.User.ID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		orders, err := client.ListUserOrders(ctx, userID)
		return ordersLoadedMsg{orders: orders, err: err}
	}
}

// Update implements View.
func (v *Orders) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case ordersLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, ShowError(msg.err, "Could not load orders")
		}
		v.orders = msg.orders
		return v, nil

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
		case "esc":
			return v, Navigate(routes.PathHome)
		}
	}
	return v, nil
}

// View implements View.
func (v *Orders) View(width, height int) string {
	theme := v.ctx.Theme

	if v.loading {
		return theme.EmptyState.Render("Loading orders...")
	}
	if len(v.orders) == 0 {
		return theme.EmptyState.Render("No orders yet.")
	}

	var b strings.Builder
	header := components.PadRight("ORDER", 26) +
		components.PadRight("PLACED", 12) +
		components.PadRight("TOTAL", 14) + "STATUS"
	b.WriteString(theme.TableHeader.Render(header))
	b.WriteString("\n")

	for i, order := range v.orders {
		placed := ""
		if !order.CreatedAt.IsZero() {
			placed = order.CreatedAt.Format("2006-01-02")
		}
		line := components.PadRight(order.ID, 26) +
			components.PadRight(placed, 12) +
			components.PadRight(components.FormatMoney(order.Total, v.ctx.Currency), 14) +
			statusBadge(order.Status)

		if i == v.cursor {
			b.WriteString(theme.RowSelected.Render("> " + line))
		} else {
			b.WriteString(theme.Row.Render("  " + line))
		}
		b.WriteString("\n")

		// Expand the selected order's lines.
		if i == v.cursor {
			for _, item := range order.Items {
				b.WriteString(theme.RowMuted.Render(
					"      " + components.FormatQuantity(item.Quantity) + " x " +
						item.ProductID + " @ " +
						components.FormatMoney(item.Price, v.ctx.Currency)))
				b.WriteString("\n")
			}
		}
	}

	b.WriteString(theme.FormHint.Render("[up/down] select  [esc] back"))
	return b.String()
}

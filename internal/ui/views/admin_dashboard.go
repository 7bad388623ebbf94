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
// ADMIN DASHBOARD
// =============================================================================

// dashboardLoadedMsg carries the aggregate counts for the dashboard.
type dashboardLoadedMsg struct {
	products int
	users    int
	orders   []api.Order
	err      error
}

// AdminDashboard summarizes the store: counts, revenue, and order status
// breakdown.
type AdminDashboard struct {
	ctx     *Context
	loading bool

	products int
	users    int
	orders   []api.Order
}

// NewAdminDashboard creates the dashboard view.
func NewAdminDashboard(ctx *Context) *AdminDashboard {
	return &AdminDashboard{ctx: ctx, loading: true}
}

// Title implements View.
func (v *AdminDashboard) Title() string { return "Dashboard" }

// Init implements View.
func (v *AdminDashboard) Init() tea.Cmd {
	client := v.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()

		products, err := client.ListProducts(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		users, err := client.ListUsers(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		orders, err := client.ListOrders(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		return dashboardLoadedMsg{
			products: len(products),
			users:    len(users),
			orders:   orders,
		}
	}
}

// Update implements View.
func (v *AdminDashboard) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, ShowError(msg.err, "Could not load dashboard")
		}
		v.products = msg.products
		v.users = msg.users
		v.orders = msg.orders
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			return v, Navigate("/admin/products")
		case "o":
			return v, Navigate("/admin/orders")
		case "u":
			return v, Navigate("/admin/users")
		case "r":
			v.loading = true
			return v, v.Init()
		case "esc":
			return v, Navigate("/")
		}
	}
	return v, nil
}

// View implements View.
func (v *AdminDashboard) View(width, height int) string {
	theme := v.ctx.Theme

	if v.loading {
		return theme.EmptyState.Render("Loading dashboard...")
	}

	var revenue float64
	counts := map[string]int{}
	for _, order := range v.orders {
		revenue += order.Total
		counts[order.Status]++
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render("Store overview"))
	b.WriteString("\n\n")
	b.WriteString(theme.FormLabel.Render("Products  "))
	b.WriteString(theme.Title.Render(components.FormatQuantity(v.products)))
	b.WriteString(theme.FormLabel.Render("   Users  "))
	b.WriteString(theme.Title.Render(components.FormatQuantity(v.users)))
	b.WriteString(theme.FormLabel.Render("   Orders  "))
	b.WriteString(theme.Title.Render(components.FormatQuantity(len(v.orders))))
	b.WriteString("\n\n")
	b.WriteString(theme.FormLabel.Render("Revenue  "))
	b.WriteString(theme.Price.Render(components.FormatMoney(revenue, v.ctx.Currency)))
	b.WriteString("\n\n")

	b.WriteString(theme.FormLabel.Render("Order pipeline"))
	b.WriteString("\n")
	for _, status := range []string{api.OrderStatusPending, api.OrderStatusDispatched, api.OrderStatusDelivered} {
		b.WriteString("  " + statusBadge(status) + " " +
			components.FormatQuantity(counts[status]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.FormHint.Render("[p] products  [o] orders  [u] users  [r] refresh  [esc] store"))
	return b.String()
}

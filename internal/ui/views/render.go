// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopfront-tui/internal/ui/components"
	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
)

// =============================================================================
// SHARED RENDER HELPERS
// =============================================================================

// lowStockThreshold is where the stock column switches to a warning color.
const lowStockThreshold = 5

// stockLabel renders a quantity with in/low/out-of-stock coloring.
func stockLabel(theme *styles.Theme, quantity int) string {
	switch {
	case quantity <= 0:
		return theme.StockOut.Render("out of stock")
	case quantity <= lowStockThreshold:
		return theme.StockLow.Render(components.FormatQuantity(quantity) + " left")
	default:
		return theme.StockOK.Render(components.FormatQuantity(quantity) + " in stock")
	}
}

// statusBadge renders an order status in its semantic color.
func statusBadge(status string) string {
	return lipgloss.NewStyle().
		Foreground(styles.OrderStatusColor(status)).
		Bold(true).
		Render(status)
}

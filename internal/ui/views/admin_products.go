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
// ADMIN PRODUCT LIST
// =============================================================================

// adminProductsLoadedMsg carries the catalog for administration.
type adminProductsLoadedMsg struct {
	products []api.Product
	err      error
}

// adminProductDeletedMsg signals a delete finished.
type adminProductDeletedMsg struct {
	err error
}

// AdminProducts manages the catalog: list, create, edit, delete.
type AdminProducts struct {
	ctx      *Context
	products []api.Product
	cursor   int
	loading  bool
}

// NewAdminProducts creates the admin catalog view.
func NewAdminProducts(ctx *Context) *AdminProducts {
	return &AdminProducts{ctx: ctx, loading: true}
}

// Title implements View.
func (v *AdminProducts) Title() string { return "Manage products" }

// Init implements View.
func (v *AdminProducts) Init() tea.Cmd {
	client := v.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		products, err := client.ListProducts(ctx)
		return adminProductsLoadedMsg{products: products, err: err}
	}
}

// Update implements View.
func (v *AdminProducts) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case adminProductsLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, ShowError(msg.err, "Could not load products")
		}
		v.products = msg.products
		if v.cursor >= len(v.products) {
			v.cursor = 0
		}
		return v, nil

	case adminProductDeletedMsg:
		if msg.err != nil {
			return v, tea.Batch(ShowError(msg.err, "Could not delete product"), v.Init())
		}
		// The public catalog cache is stale now.
		_ = v.ctx.State.InvalidateCatalog()
		return v, tea.Batch(ShowSuccess("Product deleted"), v.Init())

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.products)-1 {
				v.cursor++
			}
		case "n":
			return v, Navigate("/admin/addproducts")
		case "enter", "e":
			if v.cursor < len(v.products) {
				return v, Navigate("/admin/editproducts/" + v.products[v.cursor].ID)
			}
		case "d", "delete":
			if v.cursor < len(v.products) {
				return v, v.deleteProduct(v.products[v.cursor].ID)
			}
		case "esc":
			return v, Navigate("/admin/dashboard")
		}
	}
	return v, nil
}

func (v *AdminProducts) deleteProduct(id string) tea.Cmd {
	client := v.ctx.Client
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		return adminProductDeletedMsg{err: client.DeleteProduct(ctx, id)}
	}
}

// View implements View.
func (v *AdminProducts) View(width, height int) string {
	theme := v.ctx.Theme

	if v.loading {
		return theme.EmptyState.Render("Loading products...")
	}
	if len(v.products) == 0 {
		return theme.EmptyState.Render("Catalog is empty. Press [n] to add a product.")
	}

	titleW := width - 40
	if titleW < 16 {
		titleW = 16
	}

	var b strings.Builder
	header := components.PadRight("PRODUCT", titleW) +
		components.PadRight("CATEGORY", 14) +
		components.PadRight("PRICE", 12) + "STOCK"
	b.WriteString(theme.TableHeader.Render(header))
	b.WriteString("\n")

	for i, p := range v.products {
		line := components.PadRight(p.Title, titleW) +
			components.PadRight(p.Category, 14) +
			components.PadRight(components.FormatMoney(p.Price, v.ctx.Currency), 12) +
			components.FormatQuantity(p.StockQuantity)

		if i == v.cursor {
			b.WriteString(theme.RowSelected.Render("> " + line))
		} else {
			b.WriteString(theme.Row.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.FormHint.Render("[n] new  [enter] edit  [d] delete  [esc] dashboard"))
	return b.String()
}

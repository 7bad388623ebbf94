// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/shopfront-tui/internal/api"
	"github.com/jeranaias/shopfront-tui/internal/routes"
	"github.com/jeranaias/shopfront-tui/internal/ui/components"
)

// =============================================================================
// PRODUCT DETAIL VIEW
// =============================================================================

// productLoadedMsg carries one fetched product.
type productLoadedMsg struct {
	product *api.Product
	err     error
}

// ProductDetail shows a single product with its description rendered as
// markdown.
type ProductDetail struct {
	ctx       *Context
	productID string
	product   *api.Product
	rendered  string
	loading   bool
	quantity  int
}

// NewProductDetail creates the detail view for one product ID.
func NewProductDetail(ctx *Context, productID string) *ProductDetail {
	return &ProductDetail{ctx: ctx, productID: productID, loading: true, quantity: 1}
}

// Title implements View.
func (v *ProductDetail) Title() string {
	if v.product != nil {
		return v.product.Title
	}
	return "Product"
}

// Init implements View.
func (v *ProductDetail) Init() tea.Cmd {
	client := v.ctx.Client
	id := v.productID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		product, err := client.GetProduct(ctx, id)
		return productLoadedMsg{product: product, err: err}
	}
}

// Update implements View.
func (v *ProductDetail) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case productLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, tea.Batch(
				ShowError(msg.err, "Could not load product"),
				Navigate(routes.PathHome),
			)
		}
		v.product = msg.product
		v.rendered = renderDescription(msg.product.Description)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "+", "=":
			if v.product != nil && v.quantity < v.product.StockQuantity {
				v.quantity++
			}
		case "-":
			if v.quantity > 1 {
				v.quantity--
			}
		case "a", "enter":
			if v.product != nil && v.product.StockQuantity > 0 {
				return v, v.addToCart()
			}
		case "esc", "backspace":
			return v, Navigate(routes.PathHome)
		}
	}
	return v, nil
}

func (v *ProductDetail) addToCart() tea.Cmd {
	st := v.ctx.Session.Snapshot()
	if st.User == nil {
		return tea.Batch(
			Navigate(routes.PathLogin),
			func() tea.Msg {
				return ToastMsg{Toast: components.NewStatusToast("Sign in to add items to your cart")}
			},
		)
	}

	client := v.ctx.Client
	userID := st.User.ID
	productID := v.product.ID
	quantity := v.quantity
	title := v.product.Title
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if err := client.AddToCart(ctx, userID, productID, quantity); err != nil {
			return ToastMsg{Toast: components.NewErrorToast(api.ErrorMessage(err, "Could not add to cart"))}
		}
		return ToastMsg{Toast: components.NewSuccessToast("Added " + title + " to cart")}
	}
}

// View implements View.
func (v *ProductDetail) View(width, height int) string {
	theme := v.ctx.Theme

	if v.loading {
		return theme.EmptyState.Render("Loading product...")
	}
	if v.product == nil {
		return theme.EmptyState.Render("Product not found.")
	}

	p := v.product
	var b strings.Builder
	b.WriteString(theme.Title.Render(p.Title))
	b.WriteString("\n")
	meta := p.Brand
	if p.Category != "" {
		if meta != "" {
			meta += " / "
		}
		meta += p.Category
	}
	if meta != "" {
		b.WriteString(theme.Subtitle.Render(meta))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Price.Render(components.FormatMoney(p.Price, v.ctx.Currency)))
	b.WriteString("   ")
	b.WriteString(stockLabel(theme, p.StockQuantity))
	b.WriteString("\n\n")

	if v.rendered != "" {
		b.WriteString(v.rendered)
		b.WriteString("\n")
	}

	b.WriteString(theme.Subtitle.Render("quantity: "))
	b.WriteString(theme.Title.Render(components.FormatQuantity(v.quantity)))
	b.WriteString(theme.FormHint.Render("  [+/-] adjust  [a] add to cart  [esc] back"))

	return b.String()
}

// descriptionRenderer is the shared glamour renderer for product copy.
var descriptionRenderer *glamour.TermRenderer

func init() {
	var err error
	descriptionRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(72),
	)
	if err != nil {
		// Fall back to plain text if renderer initialization fails
		descriptionRenderer = nil
	}
}

// renderDescription renders a product description as markdown, falling back
// to the raw text on any failure.
func renderDescription(description string) string {
	if descriptionRenderer == nil || description == "" {
		return description
	}
	rendered, err := descriptionRenderer.Render(description)
	if err != nil {
		return description
	}
	return strings.TrimRight(rendered, "\n")
}

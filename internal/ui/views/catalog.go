// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopfront-tui/internal/api"
	"github.com/jeranaias/shopfront-tui/internal/routes"
	"github.com/jeranaias/shopfront-tui/internal/session"
	"github.com/jeranaias/shopfront-tui/internal/ui/components"
)

// =============================================================================
// CATALOG VIEW
// =============================================================================

// catalogLoadedMsg carries the fetched product list.
type catalogLoadedMsg struct {
	products []api.Product
	cached   bool
	err      error
}

// Catalog is the public product listing. It paints the cached catalog
// immediately when one is fresh, then replaces it with the live list.
type Catalog struct {
	ctx       *Context
	products  []api.Product
	cursor    int
	offset    int
	loading   bool
	live      bool
	fromCache bool
}

// NewCatalog creates the catalog view.
func NewCatalog(ctx *Context) *Catalog {
	return &Catalog{ctx: ctx, loading: true}
}

// Title implements View.
func (v *Catalog) Title() string { return "Products" }

// Init implements View.
func (v *Catalog) Init() tea.Cmd {
	return tea.Batch(v.loadCached(), v.fetch())
}

func (v *Catalog) loadCached() tea.Cmd {
	state := v.ctx.State
	return func() tea.Msg {
		products, ok, err := state.CachedProducts()
		if err != nil || !ok {
			return nil
		}
		return catalogLoadedMsg{products: products, cached: true}
	}
}

func (v *Catalog) fetch() tea.Cmd {
	client := v.ctx.Client
	state := v.ctx.State
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()

		products, err := client.ListProducts(ctx)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		if cerr := state.CacheProducts(products); cerr != nil {
			// Cache write failure is not worth interrupting browsing.
			client.Logf("catalog: cache write failed: %v", cerr)
		}
		return catalogLoadedMsg{products: products}
	}
}

// Update implements View.
func (v *Catalog) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.err != nil {
			v.loading = false
			if len(v.products) == 0 {
				return v, ShowError(msg.err, "Could not load products")
			}
			// Keep showing the cached list.
			return v, nil
		}
		if msg.cached && v.live {
			// Live data already arrived; ignore the slower cache read.
			return v, nil
		}
		v.products = msg.products
		v.fromCache = msg.cached
		if !msg.cached {
			v.live = true
			v.loading = false
		}
		if v.cursor >= len(v.products) {
			v.cursor = 0
			v.offset = 0
		}
		return v, nil

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
		case "enter":
			if p := v.selected(); p != nil {
				return v, Navigate("/products/" + p.ID)
			}
		case "a":
			if p := v.selected(); p != nil {
				return v, v.addToCart(p)
			}
		case "r":
			v.loading = true
			return v, v.fetch()
		case "c":
			return v, Navigate(routes.PathCart)
		}
	}
	return v, nil
}

func (v *Catalog) selected() *api.Product {
	if v.cursor < 0 || v.cursor >= len(v.products) {
		return nil
	}
	return &v.products[v.cursor]
}

func (v *Catalog) addToCart(p *api.Product) tea.Cmd {
	st := v.ctx.Session.Snapshot()
	if st.Phase != session.PhaseAuthenticated {
		return tea.Batch(
			Navigate(routes.PathLogin),
			func() tea.Msg {
				return ToastMsg{Toast: components.NewStatusToast("Sign in to add items to your cart")}
			},
		)
	}

	client := v.ctx.Client
	userID := st.User.ID
	productID := p.ID
	title := p.Title
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		if err := client.AddToCart(ctx, userID, productID, 1); err != nil {
			return ToastMsg{Toast: components.NewErrorToast(api.ErrorMessage(err, "Could not add to cart"))}
		}
		return ToastMsg{Toast: components.NewSuccessToast("Added " + title + " to cart")}
	}
}

// View implements View.
func (v *Catalog) View(width, height int) string {
	theme := v.ctx.Theme

	if v.loading && len(v.products) == 0 {
		return theme.EmptyState.Render("Loading products...")
	}
	if len(v.products) == 0 {
		return theme.EmptyState.Render("No products available.")
	}

	titleW := width - 34
	if titleW < 16 {
		titleW = 16
	}

	var b strings.Builder
	header := components.PadRight("PRODUCT", titleW) +
		components.PadRight("BRAND", 14) +
		components.PadRight("PRICE", 12) + "STOCK"
	b.WriteString(theme.TableHeader.Render(header))
	b.WriteString("\n")

	visible := height - 4
	if visible < 3 {
		visible = 3
	}
	v.scrollTo(visible)

	end := v.offset + visible
	if end > len(v.products) {
		end = len(v.products)
	}

	for i := v.offset; i < end; i++ {
		p := v.products[i]
		line := components.PadRight(p.Title, titleW) +
			components.PadRight(p.Brand, 14) +
			components.PadRight(components.FormatMoney(p.Price, v.ctx.Currency), 12) +
			stockLabel(theme, p.StockQuantity)

		if i == v.cursor {
			b.WriteString(theme.RowSelected.Render("> " + line))
		} else {
			b.WriteString(theme.Row.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if v.fromCache {
		if v.loading {
			b.WriteString(theme.Subtitle.Render("showing cached catalog, refreshing..."))
		} else {
			b.WriteString(theme.Subtitle.Render("showing cached catalog, backend unreachable"))
		}
	}

	return b.String()
}

// scrollTo keeps the cursor inside the visible window.
func (v *Catalog) scrollTo(visible int) {
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/shopfront-tui/internal/api"
)

// =============================================================================
// ADMIN PRODUCT FORM
// =============================================================================

// productFormLoadedMsg carries the product being edited.
type productFormLoadedMsg struct {
	product *api.Product
	err     error
}

// productSavedMsg signals the create/update outcome.
type productSavedMsg struct {
	err error
}

// Product form field order.
const (
	pfTitle = iota
	pfDescription
	pfBrand
	pfCategory
	pfPrice
	pfStock
	pfImage
	pfCount
)

// AdminProductForm creates a new product or edits an existing one. An
// empty productID means create.
type AdminProductForm struct {
	ctx       *Context
	productID string
	inputs    []textinput.Model
	focus     int
	loading   bool
	saving    bool
	errMsg    string
}

// NewAdminProductForm creates the form. productID == "" creates a product;
// otherwise the identified product is loaded for editing.
func NewAdminProductForm(ctx *Context, productID string) *AdminProductForm {
	labels := []string{"title", "description (markdown)", "brand", "category", "price", "stock quantity", "image URL"}
	inputs := make([]textinput.Model, pfCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = labels[i]
		in.CharLimit = 512
		inputs[i] = in
	}
	inputs[pfTitle].Focus()

	return &AdminProductForm{
		ctx:       ctx,
		productID: productID,
		inputs:    inputs,
		loading:   productID != "",
	}
}

// Title implements View.
func (v *AdminProductForm) Title() string {
	if v.productID == "" {
		return "New product"
	}
	return "Edit product"
}

// Init implements View.
func (v *AdminProductForm) Init() tea.Cmd {
	if v.productID == "" {
		return textinput.Blink
	}
	client := v.ctx.Client
	id := v.productID
	return tea.Batch(textinput.Blink, func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		product, err := client.GetProduct(ctx, id)
		return productFormLoadedMsg{product: product, err: err}
	})
}

// Update implements View.
func (v *AdminProductForm) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case productFormLoadedMsg:
		v.loading = false
		if msg.err != nil {
			return v, tea.Batch(
				ShowError(msg.err, "Could not load product"),
				Navigate("/admin/products"),
			)
		}
		p := msg.product
		v.inputs[pfTitle].SetValue(p.Title)
		v.inputs[pfDescription].SetValue(p.Description)
		v.inputs[pfBrand].SetValue(p.Brand)
		v.inputs[pfCategory].SetValue(p.Category)
		v.inputs[pfPrice].SetValue(strconv.FormatFloat(p.Price, 'f', -1, 64))
		v.inputs[pfStock].SetValue(strconv.Itoa(p.StockQuantity))
		v.inputs[pfImage].SetValue(p.Image)
		return v, nil

	case productSavedMsg:
		v.saving = false
		if msg.err != nil {
			v.errMsg = api.ErrorMessage(msg.err, "Could not save product")
			return v, nil
		}
		// The public catalog cache is stale now.
		_ = v.ctx.State.InvalidateCatalog()
		return v, tea.Batch(ShowSuccess("Product saved"), Navigate("/admin/products"))

	case tea.KeyMsg:
		if v.saving || v.loading {
			return v, nil
		}
		switch msg.String() {
		case "esc":
			return v, Navigate("/admin/products")
		case "tab", "down":
			v.moveFocus(1)
			return v, nil
		case "shift+tab", "up":
			v.moveFocus(-1)
			return v, nil
		case "enter":
			if v.focus < pfCount-1 {
				v.moveFocus(1)
				return v, nil
			}
			return v, v.submit()
		}
	}

	var cmd tea.Cmd
	v.inputs[v.focus], cmd = v.inputs[v.focus].Update(msg)
	return v, cmd
}

func (v *AdminProductForm) moveFocus(delta int) {
	v.inputs[v.focus].Blur()
	v.focus = (v.focus + delta + pfCount) % pfCount
	v.inputs[v.focus].Focus()
}

func (v *AdminProductForm) submit() tea.Cmd {
	title := strings.TrimSpace(v.inputs[pfTitle].Value())
	if title == "" {
		v.errMsg = "Title is required"
		return nil
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(v.inputs[pfPrice].Value()), 64)
	if err != nil || price < 0 {
		v.errMsg = "Price must be a non-negative number"
		return nil
	}
	stock, err := strconv.Atoi(strings.TrimSpace(v.inputs[pfStock].Value()))
	if err != nil || stock < 0 {
		v.errMsg = "Stock must be a non-negative integer"
		return nil
	}

	input := api.ProductInput{
		Title:         title,
		Description:   v.inputs[pfDescription].Value(),
		Brand:         strings.TrimSpace(v.inputs[pfBrand].Value()),
		Category:      strings.TrimSpace(v.inputs[pfCategory].Value()),
		Price:         price,
		StockQuantity: stock,
		Image:         strings.TrimSpace(v.inputs[pfImage].Value()),
	}

	v.saving = true
	v.errMsg = ""

	client := v.ctx.Client
	id := v.productID
	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()

		var err error
		if id == "" {
			_, err = client.CreateProduct(ctx, input)
		} else {
			err = client.UpdateProduct(ctx, id, input)
		}
		return productSavedMsg{err: err}
	}
}

// View implements View.
func (v *AdminProductForm) View(width, height int) string {
	theme := v.ctx.Theme

	if v.loading {
		return theme.EmptyState.Render("Loading product...")
	}

	labels := []string{"Title", "Description", "Brand", "Category", "Price", "Stock", "Image URL"}

	var b strings.Builder
	b.WriteString(theme.Title.Render(v.Title()))
	b.WriteString("\n\n")
	for i, in := range v.inputs {
		b.WriteString(theme.FormLabel.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.saving {
		b.WriteString(theme.Subtitle.Render("Saving..."))
	} else if v.errMsg != "" {
		b.WriteString(theme.FormError.Render(v.errMsg))
	} else {
		b.WriteString(theme.FormHint.Render("[enter] next/save  [esc] cancel"))
	}

	return b.String()
}

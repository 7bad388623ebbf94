// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/jeranaias/shopfront-tui/internal/config"
	"github.com/jeranaias/shopfront-tui/internal/ui/components"
)

// HandleProducts lists the catalog to stdout. A successful fetch also
// refreshes the local catalog cache used for offline display in the TUI.
func HandleProducts(args *Args) {
	cfg := config.Global()
	state, err := OpenState(cfg)
	if err != nil {
		fail(err)
	}
	defer state.Close()

	client := NewClient(cfg, state)

	ctx, cancel := reqContext(cfg)
	defer cancel()

	products, err := client.ListProducts(ctx)
	if err != nil {
		// Fall back to cached rows so the command still works offline.
		cached, ok, cacheErr := state.CachedProducts()
		if cacheErr != nil || !ok {
			fail(err)
		}
		products = cached
		if !args.Quiet && !args.JSON {
			fmt.Println(WarningStyle.Render("Backend unreachable; showing cached catalog."))
		}
	} else {
		_ = state.CacheProducts(products)
	}

	if args.JSON {
		PrintJSON(products)
		return
	}

	if len(products) == 0 {
		fmt.Println(DimStyle.Render("Catalog is empty."))
		return
	}

	titleW := GetTerminalWidth() - 44
	if titleW < 20 {
		titleW = 20
	}

	fmt.Println(TitleStyle.Render("Catalog"))
	header := components.PadRight("PRODUCT", titleW) +
		components.PadRight("CATEGORY", 14) +
		components.PadRight("PRICE", 14) + "STOCK"
	fmt.Println(DimStyle.Render(header))
	for _, p := range products {
		fmt.Println(components.PadRight(p.Title, titleW) +
			components.PadRight(p.Category, 14) +
			components.PadRight(components.FormatMoney(p.Price, cfg.UI.Currency), 14) +
			components.FormatQuantity(p.StockQuantity))
	}
	if !args.Quiet {
		fmt.Println(DimStyle.Render(fmt.Sprintf("%d products", len(products))))
	}
}

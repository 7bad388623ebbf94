// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

// Truncate shortens s to fit width display cells, appending "..." when cut.
// Width is measured in terminal cells, not bytes, so wide runes count twice.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads s with spaces to exactly width display cells, truncating
// first when it is too long. Table columns stay aligned even with wide runes.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

// =============================================================================
// MONEY FORMATTING
// =============================================================================

// moneyPrinter renders grouped digits ("12,500").
var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders an amount with its ISO 4217 currency code, e.g.
// "LKR 12,500.00". Unknown codes fall back to printing the code verbatim.
func FormatMoney(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return moneyPrinter.Sprintf("%s %.2f", code, amount)
	}
	return moneyPrinter.Sprintf("%v %.2f", unit, amount)
}

// FormatQuantity renders an integer with thousand separators.
func FormatQuantity(n int) string {
	return moneyPrinter.Sprintf("%d", n)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hel...", Truncate("hello world", 6))
	assert.Equal(t, "", Truncate("hello", 0))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "ab...", PadRight("abcdefgh", 5))
	assert.Len(t, PadRight("ab", 5), 5)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "LKR 12,500.00", FormatMoney(12500, "LKR"))
	assert.Equal(t, "USD 9.99", FormatMoney(9.99, "USD"))
}

func TestFormatMoney_UnknownCode(t *testing.T) {
	out := FormatMoney(5, "???")
	assert.Contains(t, out, "???")
	assert.Contains(t, out, "5.00")
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "1,234", FormatQuantity(1234))
	assert.Equal(t, "7", FormatQuantity(7))
}

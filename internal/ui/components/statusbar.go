// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is one key binding shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar is the bottom bar: contextual shortcuts on the left, an
// optional note (cart count, cache age) on the right.
type StatusBar struct {
	Width     int
	Shortcuts []Shortcut
	Note      string
}

// View renders the status bar.
func (b StatusBar) View(theme *styles.Theme) string {
	parts := make([]string, 0, len(b.Shortcuts))
	for _, sc := range b.Shortcuts {
		parts = append(parts,
			theme.ShortcutKey.Render(sc.Key)+" "+theme.ShortcutDesc.Render(sc.Desc))
	}
	left := strings.Join(parts, "  ")

	line := left
	if b.Note != "" {
		gap := b.Width - lipgloss.Width(left) - lipgloss.Width(b.Note) - 2
		if gap < 1 {
			gap = 1
		}
		line = left + strings.Repeat(" ", gap) + theme.Subtitle.Render(b.Note)
	}

	return theme.StatusBar.Width(b.Width).Render(line)
}

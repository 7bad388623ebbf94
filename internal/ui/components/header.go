// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/shopfront-tui/internal/session"
	"github.com/jeranaias/shopfront-tui/internal/ui/styles"
)

// =============================================================================
// HEADER
// =============================================================================

// Header is the one-line application header: brand, current view title, and
// the signed-in identity on the right.
type Header struct {
	Brand string
	Title string
	Width int
}

// NewHeader creates a header with the storefront brand.
func NewHeader() Header {
	return Header{Brand: "shopfront"}
}

// View renders the header for the given session state.
func (h Header) View(theme *styles.Theme, st session.State) string {
	left := theme.HeaderBrand.Render(h.Brand)
	if h.Title != "" {
		left += theme.Subtitle.Render(" / ") + theme.HeaderTitle.Render(h.Title)
	}

	right := h.identity(theme, st)

	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return theme.Header.Width(h.Width).Render(left + strings.Repeat(" ", gap) + right)
}

// identity renders the right-hand session badge.
func (h Header) identity(theme *styles.Theme, st session.State) string {
	switch st.Phase {
	case session.PhaseAuthenticated:
		label := st.User.Email
		if label == "" {
			label = st.User.ID
		}
		out := theme.HeaderUser.Render(label)
		if st.User.IsAdmin {
			out += " " + theme.HeaderAdmin.Render("[admin]")
		}
		return out
	case session.PhaseIdle, session.PhaseAuthenticating:
		return theme.Subtitle.Render("signing in...")
	default:
		return theme.Subtitle.Render("guest")
	}
}

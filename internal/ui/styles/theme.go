// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderBrand    lipgloss.Style
	HeaderUser     lipgloss.Style
	HeaderAdmin    lipgloss.Style

	// ==========================================================================
	// LIST AND TABLE STYLES
	// ==========================================================================

	TableHeader   lipgloss.Style
	Row           lipgloss.Style
	RowSelected   lipgloss.Style
	RowMuted      lipgloss.Style
	Price         lipgloss.Style
	StockOK       lipgloss.Style
	StockLow      lipgloss.Style
	StockOut      lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormLabel       lipgloss.Style
	FormInput       lipgloss.Style
	FormInputFocus  lipgloss.Style
	FormHint        lipgloss.Style
	FormError       lipgloss.Style
	Button          lipgloss.Style
	ButtonActive    lipgloss.Style
	ButtonDanger    lipgloss.Style

	// ==========================================================================
	// TOAST STYLES
	// ==========================================================================

	ToastError   lipgloss.Style
	ToastWarning lipgloss.Style
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	SessionBadge lipgloss.Style

	// ==========================================================================
	// MISC STYLES
	// ==========================================================================

	Spinner    lipgloss.Style
	EmptyState lipgloss.Style
	Forbidden  lipgloss.Style
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
}

// NewTheme creates a theme tuned to the current terminal.
func NewTheme() *Theme {
	profile := termenv.ColorProfile()
	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.buildStyles()
	return t
}

// SetSize updates layout dimensions on terminal resize.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

func (t *Theme) buildStyles() {
	t.App = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Container = lipgloss.NewStyle().
		Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)
	t.HeaderTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)
	t.HeaderBrand = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.HeaderUser = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.HeaderAdmin = lipgloss.NewStyle().
		Foreground(AdminBadge).
		Bold(true)

	// Lists and tables
	t.TableHeader = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)
	t.Row = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.RowSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SelectionBg).
		Bold(true)
	t.RowMuted = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.Price = lipgloss.NewStyle().
		Foreground(Price).
		Bold(true)
	t.StockOK = lipgloss.NewStyle().
		Foreground(Emerald)
	t.StockLow = lipgloss.NewStyle().
		Foreground(Amber)
	t.StockOut = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	// Forms
	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)
	t.FormInput = lipgloss.NewStyle().
		Foreground(TextPrimary)
	t.FormInputFocus = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Indigo)
	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)
	t.FormError = lipgloss.NewStyle().
		Foreground(Rose)
	t.Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay)
	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Padding(0, 2).
		Bold(true).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Indigo)
	t.ButtonDanger = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Rose).
		Padding(0, 2).
		Bold(true)

	// Toasts
	toast := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true)
	t.ToastError = toast.
		Foreground(TextInverse).
		Background(RoseDeep)
	t.ToastWarning = toast.
		Foreground(TextInverse).
		Background(Amber)
	t.ToastInfo = toast.
		Foreground(TextInverse).
		Background(Sky)
	t.ToastSuccess = toast.
		Foreground(TextInverse).
		Background(Emerald)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
	t.SessionBadge = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	// Misc
	t.Spinner = lipgloss.NewStyle().
		Foreground(Indigo)
	t.EmptyState = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true).
		Padding(1, 2)
	t.Forbidden = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose)
	t.Title = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)
	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)
}

// Package ui provides the milling station window.
//
// This file defines a compact Fyne theme for dense station screens.

package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// variantSystem marks "follow the OS setting".
const variantSystem fyne.ThemeVariant = 99

// StationTheme wraps the default Fyne theme with compact sizing overrides
// and an optional fixed light/dark variant.
type StationTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewStationTheme creates a theme for the configured name: "light", "dark"
// or anything else for the system default.
func NewStationTheme(name string) *StationTheme {
	return &StationTheme{base: theme.DefaultTheme(), variant: parseVariant(name)}
}

func parseVariant(name string) fyne.ThemeVariant {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "light":
		return theme.VariantLight
	case "dark":
		return theme.VariantDark
	default:
		return variantSystem
	}
}

// Color delegates to the base theme, forcing the fixed variant when set.
func (t *StationTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.variant != variantSystem {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

// Font delegates to the base theme.
func (t *StationTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *StationTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for station screens.
func (t *StationTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	default:
		return t.base.Size(name)
	}
}

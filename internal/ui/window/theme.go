package window

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"stopwatch/internal/core/model"
)

// variantTheme pins the default theme to one variant regardless of the OS setting.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

// NewTheme returns the application theme for mode.
func NewTheme(mode model.DisplayMode) fyne.Theme {
	return &variantTheme{
		Theme:   theme.DefaultTheme(),
		variant: variantFor(mode),
	}
}

func (pinned *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return pinned.Theme.Color(name, pinned.variant)
}

func variantFor(mode model.DisplayMode) fyne.ThemeVariant {
	if mode == model.DisplayLight {
		return theme.VariantLight
	}
	return theme.VariantDark
}

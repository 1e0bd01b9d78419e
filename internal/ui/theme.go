package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	config "github.com/edward-ap/scopeview/internal/config"
)

// optionsTheme wraps a base theme and applies the user's font options: text
// sizes scale relative to the default point size and an optional resource
// replaces the regular text font.
type optionsTheme struct {
	fyne.Theme
	textScale    float32
	captionScale float32
	font         fyne.Resource
}

// NewOptionsTheme builds a theme for o on top of base. font may be nil to keep
// the base theme's fonts.
func NewOptionsTheme(base fyne.Theme, o config.AppOptions, font fyne.Resource) fyne.Theme {
	if base == nil {
		base = theme.DefaultTheme()
	}
	return &optionsTheme{
		Theme:        base,
		textScale:    fontScale(o.FontSize),
		captionScale: fontScale(o.TooltipFontSize),
		font:         font,
	}
}

// ApplyOptionsTheme installs the theme for o on a.
func ApplyOptionsTheme(a fyne.App, base fyne.Theme, o config.AppOptions, font fyne.Resource) {
	if a == nil {
		return
	}
	a.Settings().SetTheme(NewOptionsTheme(base, o, font))
}

// fontScale converts a point size to a multiplier of the theme's own sizes.
func fontScale(size float64) float32 {
	min, max := config.FontSizeRange()
	v := clampFloat64(config.NormalizeFontSize(size), min, max)
	return float32(v / config.DefaultFontSize)
}

func (t *optionsTheme) Size(n fyne.ThemeSizeName) float32 {
	base := t.Theme.Size(n)
	switch n {
	case theme.SizeNameText, theme.SizeNameHeadingText, theme.SizeNameSubHeadingText:
		return base * t.textScale
	case theme.SizeNameCaptionText:
		return base * t.captionScale
	}
	return base
}

func (t *optionsTheme) Font(s fyne.TextStyle) fyne.Resource {
	if t.font != nil && !s.Monospace && !s.Symbol && !s.Bold && !s.Italic {
		return t.font
	}
	return t.Theme.Font(s)
}

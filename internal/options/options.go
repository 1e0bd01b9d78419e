// Package options reconciles edited display options against the live
// configuration and announces what changed.
package options

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	config "github.com/edward-ap/scopeview/internal/config"
)

// ErrFontSizeOutOfRange rejects sizes that are fractional or outside the
// configured range.
var ErrFontSizeOutOfRange = errors.New("font size out of range")

// Changes is a set of option categories that differ between two snapshots.
type Changes uint8

const (
	// General covers the scrolling, trigger, profile bar and buffer options.
	General Changes = 1 << iota
	// Font covers the font family and both font sizes.
	Font
)

// Has reports whether every category in c is present.
func (ch Changes) Has(c Changes) bool { return ch&c == c && c != 0 }

// Any reports whether at least one category changed.
func (ch Changes) Any() bool { return ch != 0 }

// String lists the changed categories for logs and CLI output.
func (ch Changes) String() string {
	var parts []string
	if ch.Has(General) {
		parts = append(parts, "general")
	}
	if ch.Has(Font) {
		parts = append(parts, "font")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// Diff compares edited against current field by field. Font sizes are whole
// numbers from a fixed set, so exact equality is intended.
func Diff(current, edited config.AppOptions) Changes {
	var ch Changes
	if current.QuickScroll != edited.QuickScroll ||
		current.TrigPosDisplayInMid != edited.TrigPosDisplayInMid ||
		current.DisplayProfileInBar != edited.DisplayProfileInBar ||
		current.SwapBackBufferAlways != edited.SwapBackBufferAlways ||
		current.AutoScrollLatestData != edited.AutoScrollLatestData {
		ch |= General
	}
	if current.FontSize != edited.FontSize ||
		current.TooltipFontSize != edited.TooltipFontSize ||
		current.FontName != edited.FontName {
		ch |= Font
	}
	return ch
}

// merge copies the fields of the categories in ch from src into dst.
func merge(dst, src config.AppOptions, ch Changes) config.AppOptions {
	if ch.Has(General) {
		dst.QuickScroll = src.QuickScroll
		dst.TrigPosDisplayInMid = src.TrigPosDisplayInMid
		dst.DisplayProfileInBar = src.DisplayProfileInBar
		dst.SwapBackBufferAlways = src.SwapBackBufferAlways
		dst.AutoScrollLatestData = src.AutoScrollLatestData
	}
	if ch.Has(Font) {
		dst.FontSize = src.FontSize
		dst.TooltipFontSize = src.TooltipFontSize
		dst.FontName = src.FontName
	}
	return dst
}

// Validate checks every field with a restricted domain.
func Validate(o config.AppOptions) error {
	if err := ValidateFontSize(o.FontSize); err != nil {
		return fmt.Errorf("font size: %w", err)
	}
	if err := ValidateFontSize(o.TooltipFontSize); err != nil {
		return fmt.Errorf("tooltip font size: %w", err)
	}
	return nil
}

// ValidateFontSize accepts only whole sizes inside config.FontSizeRange.
func ValidateFontSize(size float64) error {
	min, max := config.FontSizeRange()
	if math.IsNaN(size) || size != math.Trunc(size) || size < min || size > max {
		return fmt.Errorf("%w: %v not a whole number in [%v, %v]", ErrFontSizeOutOfRange, size, min, max)
	}
	return nil
}

// ParseFontSize converts dropdown or flag text into a validated size.
func ParseFontSize(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrFontSizeOutOfRange, text)
	}
	if err := ValidateFontSize(v); err != nil {
		return 0, err
	}
	return v, nil
}

// FormatFontSize renders a size the way the dropdown lists it.
func FormatFontSize(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64)
}

// FontSizeChoices lists every whole size from min to max inclusive.
func FontSizeChoices(min, max float64) []float64 {
	lo, hi := math.Ceil(min), math.Floor(max)
	if hi < lo {
		return nil
	}
	out := make([]float64, 0, int(hi-lo)+1)
	for v := lo; v <= hi; v++ {
		out = append(out, v)
	}
	return out
}

// FontSizeIndex finds size in choices. An unknown size selects the default
// size when it is listed, otherwise the first entry.
func FontSizeIndex(choices []float64, size float64) int {
	fallback := 0
	for i, v := range choices {
		if v == size {
			return i
		}
		if v == config.DefaultFontSize {
			fallback = i
		}
	}
	return fallback
}

// FontFamilyChoices returns "" for the toolkit default followed by the sorted,
// de-duplicated families. Names containing "[" are foundry variants and are
// skipped.
func FontFamilyChoices(families []string) []string {
	out := []string{""}
	seen := map[string]bool{}
	var names []string
	for _, f := range families {
		f = strings.TrimSpace(f)
		if f == "" || strings.Contains(f, "[") || seen[f] {
			continue
		}
		seen[f] = true
		names = append(names, f)
	}
	sort.Strings(names)
	return append(out, names...)
}

// FontFamilyIndex finds name in choices, falling back to the default entry.
func FontFamilyIndex(choices []string, name string) int {
	for i, c := range choices {
		if c == name {
			return i
		}
	}
	return 0
}

// Package ui contains fyne helpers shared across the viewer.
package ui

// clampFloat64 constrains v to the [min, max] interval.
func clampFloat64(v, min, max float64) float64 {
	if max <= min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

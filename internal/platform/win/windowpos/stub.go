//go:build !windows

package windowpos

import "fyne.io/fyne/v2"

// Supported reports whether this build can read and move native windows.
const Supported = false

// Get is unavailable off Windows.
func Get(fw fyne.Window) (Point, error) {
	return Point{}, ErrUnsupported
}

// Apply is unavailable off Windows.
func Apply(fw fyne.Window, p Point) error {
	return ErrUnsupported
}

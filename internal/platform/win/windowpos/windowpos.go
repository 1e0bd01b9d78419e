// Package windowpos reads and restores native window coordinates where fyne
// does not expose them. Only Windows builds are supported.
package windowpos

import "errors"

// ErrUnsupported is returned on platforms or windows without a native handle.
var ErrUnsupported = errors.New("window position not supported")

// Point is a top-left screen coordinate in physical pixels.
type Point struct {
	X, Y int
}

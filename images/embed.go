// Package images bundles the application artwork into the binary.
package images

import _ "embed"

// ScopeViewSVG is the application and window icon.
//
//go:embed scopeview.svg
var ScopeViewSVG []byte

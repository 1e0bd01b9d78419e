package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/widget"
)

// StatusLine is a single-line label backed by a string binding, so SetText is
// safe to call from any goroutine.
type StatusLine struct {
	lbl  *widget.Label
	bind binding.String
}

// NewStatusLine creates a status line showing text.
func NewStatusLine(text string) *StatusLine {
	b := binding.NewString()
	_ = b.Set(text)
	lbl := widget.NewLabelWithData(b)
	lbl.Truncation = fyne.TextTruncateEllipsis
	return &StatusLine{lbl: lbl, bind: b}
}

// CanvasObject exposes the label for layout containers.
func (s *StatusLine) CanvasObject() fyne.CanvasObject { return s.lbl }

// SetText replaces the shown text; blank text is ignored.
func (s *StatusLine) SetText(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	_ = s.bind.Set(text)
}

// Text returns the current text.
func (s *StatusLine) Text() string {
	v, _ := s.bind.Get()
	return v
}

package viewerapp

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/widget"

	config "github.com/edward-ap/scopeview/internal/config"
	options "github.com/edward-ap/scopeview/internal/options"
)

// optionsForm holds the controls of the display options dialog, pre-populated
// from a snapshot. It never touches the live configuration.
type optionsForm struct {
	quickScroll *widget.Check
	abortData   *widget.Check
	autoScroll  *widget.Check
	trigInMid   *widget.Check
	profileBar  *widget.Check

	fontFamily  *widget.Select
	fontSize    *widget.Select
	tooltipSize *widget.Select

	// families[i] is the value behind fontFamily option i; "" is the default.
	families []string
	// initialFamily is the fontFamily index selected from the snapshot.
	initialFamily int
}

// newOptionsForm builds the controls for current. families is the raw list of
// installed font families. A stored family that is not installed keeps its own
// entry so confirming without edits leaves it in place.
func newOptionsForm(current config.AppOptions, families []string) *optionsForm {
	listed := make([]string, 0, len(families)+1)
	listed = append(listed, families...)
	if current.FontName != "" {
		listed = append(listed, current.FontName)
	}
	f := &optionsForm{
		quickScroll: newOptionCheck(current.QuickScroll),
		abortData:   newOptionCheck(current.SwapBackBufferAlways),
		autoScroll:  newOptionCheck(current.AutoScrollLatestData),
		trigInMid:   newOptionCheck(current.TrigPosDisplayInMid),
		profileBar:  newOptionCheck(current.DisplayProfileInBar),
		families:    options.FontFamilyChoices(listed),
	}

	labels := make([]string, len(f.families))
	for i, name := range f.families {
		labels[i] = name
		if name == "" {
			labels[i] = lang.X("dialog.options.default_font", "Default")
		}
	}
	f.initialFamily = options.FontFamilyIndex(f.families, current.FontName)
	f.fontFamily = widget.NewSelect(labels, nil)
	f.fontFamily.SetSelectedIndex(f.initialFamily)

	f.fontSize = newFontSizeSelect(current.FontSize)
	f.tooltipSize = newFontSizeSelect(current.TooltipFontSize)
	return f
}

func newOptionCheck(checked bool) *widget.Check {
	c := widget.NewCheck("", nil)
	c.SetChecked(checked)
	return c
}

// newFontSizeSelect lists every size of the configured range and selects size,
// or the default size when size is not one of them.
func newFontSizeSelect(size float64) *widget.Select {
	choices := options.FontSizeChoices(config.FontSizeRange())
	labels := make([]string, len(choices))
	for i, v := range choices {
		labels[i] = options.FormatFontSize(v)
	}
	sel := widget.NewSelect(labels, nil)
	sel.SetSelectedIndex(options.FontSizeIndex(choices, size))
	return sel
}

// edited reads the controls back into a copy of base.
func (f *optionsForm) edited(base config.AppOptions) (config.AppOptions, error) {
	out := base
	out.QuickScroll = f.quickScroll.Checked
	out.SwapBackBufferAlways = f.abortData.Checked
	out.AutoScrollLatestData = f.autoScroll.Checked
	out.TrigPosDisplayInMid = f.trigInMid.Checked
	out.DisplayProfileInBar = f.profileBar.Checked

	// An untouched select keeps base.FontName, even one the list cannot show.
	if i := f.fontFamily.SelectedIndex(); i != f.initialFamily {
		if i >= 0 && i < len(f.families) {
			out.FontName = f.families[i]
		} else {
			out.FontName = ""
		}
	}

	size, err := options.ParseFontSize(f.fontSize.Selected)
	if err != nil {
		return base, fmt.Errorf("font size: %w", err)
	}
	tooltip, err := options.ParseFontSize(f.tooltipSize.Selected)
	if err != nil {
		return base, fmt.Errorf("tooltip font size: %w", err)
	}
	out.FontSize = size
	out.TooltipFontSize = tooltip
	return out, nil
}

// result turns the dialog outcome into what a Presenter reports. A form that
// cannot be read back is treated as a cancel.
func (f *optionsForm) result(accepted bool, current config.AppOptions) (bool, config.AppOptions, error) {
	if !accepted {
		return false, current, nil
	}
	edited, err := f.edited(current)
	if err != nil {
		return false, current, err
	}
	return true, edited, nil
}

// content lays the controls out in the Logic, Scope and UI groups.
func (f *optionsForm) content() fyne.CanvasObject {
	logic := widget.NewForm(
		widget.NewFormItem(lang.X("dialog.options.quick_scroll", "Quick scroll"), f.quickScroll),
		widget.NewFormItem(lang.X("dialog.options.use_abort_data", "Used abort data"), f.abortData),
		widget.NewFormItem(lang.X("dialog.options.auto_scroll_latest", "Auto scroll latest"), f.autoScroll),
	)
	dso := widget.NewForm(
		widget.NewFormItem(lang.X("dialog.options.trig_display_middle", "Trig pos in middle"), f.trigInMid),
	)
	uiForm := widget.NewForm(
		widget.NewFormItem(lang.X("dialog.options.profile_in_bar", "Profile in bar"), f.profileBar),
		widget.NewFormItem(lang.X("dialog.options.font", "Font"), f.fontFamily),
		widget.NewFormItem(lang.X("dialog.options.font_size", "Font size"), f.fontSize),
		widget.NewFormItem(lang.X("dialog.options.tooltip_font_size", "Tooltip font size"), f.tooltipSize),
	)
	return container.NewVBox(
		widget.NewCard(lang.X("dialog.options.group.logic", "Logic"), "", logic),
		widget.NewCard(lang.X("dialog.options.group.dso", "Scope"), "", dso),
		widget.NewCard(lang.X("dialog.options.group.ui", "UI"), "", uiForm),
	)
}

// dialogPresenter shows the options form in a modal fyne dialog on win.
type dialogPresenter struct {
	win      fyne.Window
	families func() []string
}

// Present implements options.Presenter. Closing the dialog any way other than
// the confirm button reports a cancel.
func (p *dialogPresenter) Present(current config.AppOptions, done func(bool, config.AppOptions)) {
	var families []string
	if p.families != nil {
		families = p.families()
	}
	form := newOptionsForm(current, families)
	d := dialog.NewCustomConfirm(
		lang.X("dialog.options.title", "Display options"),
		lang.X("dialog.options.ok", "OK"),
		lang.X("dialog.options.cancel", "Cancel"),
		form.content(),
		func(accepted bool) {
			ok, edited, err := form.result(accepted, current)
			if err != nil {
				dialog.ShowError(err, p.win)
			}
			done(ok, edited)
		},
		p.win,
	)
	d.Show()
}

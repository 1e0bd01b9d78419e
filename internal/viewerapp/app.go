// Package viewerapp wires the UI, configuration store and change bus together
// to present the ScopeView desktop window.
package viewerapp

import (
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/lang"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	config "github.com/edward-ap/scopeview/internal/config"
	events "github.com/edward-ap/scopeview/internal/events"
	fonts "github.com/edward-ap/scopeview/internal/fonts"
	options "github.com/edward-ap/scopeview/internal/options"
	windowpos "github.com/edward-ap/scopeview/internal/platform/win/windowpos"
	ui "github.com/edward-ap/scopeview/internal/ui"
)

// Deps are the collaborators constructed at startup and shared by reference.
type Deps struct {
	Store *config.Store
	Bus   *events.Bus
	Fonts fonts.Provider
	Log   zerolog.Logger
}

// App owns the fyne application, the main window and the options controller.
type App struct {
	fa  fyne.App
	w   fyne.Window
	log zerolog.Logger

	store *config.Store
	bus   *events.Bus
	fonts fonts.Provider

	options   *options.Controller
	presenter options.Presenter
	baseTheme fyne.Theme

	status  *ui.StatusLine
	summary *widget.Label

	unsubscribe []func()
}

// NewApp creates the fyne application and the main window.
func NewApp(d Deps) *App {
	return newAppWith(app.NewWithID(config.AppID), d)
}

// newAppWith builds the App on an existing fyne.App so tests can pass the
// fyne test driver.
func newAppWith(fa fyne.App, d Deps) *App {
	if d.Bus == nil {
		d.Bus = events.NewBus()
	}
	if err := registerTranslations(); err != nil {
		d.Log.Warn().Err(err).Msg("failed to register translations")
	}

	fa.SetIcon(AppIcon)
	w := fa.NewWindow("ScopeView")
	w.SetIcon(AppIcon)
	w.SetMaster()
	cfg := d.Store.Config()
	w.Resize(fyne.NewSize(float32(cfg.WindowW), float32(cfg.WindowH)))

	a := &App{
		fa:        fa,
		w:         w,
		log:       d.Log,
		store:     d.Store,
		bus:       d.Bus,
		fonts:     d.Fonts,
		options:   options.NewController(d.Store, d.Bus, d.Log),
		baseTheme: theme.DefaultTheme(),
	}
	a.presenter = &dialogPresenter{win: w, families: a.fontFamilies}

	a.unsubscribe = append(a.unsubscribe, d.Bus.Subscribe(a.handleOptionsEvent))
	a.applyFontOptions()
	a.buildUI()
	a.restoreWindowPlacement()

	// window close handler: save size & position
	w.SetCloseIntercept(func() {
		a.captureWindowGeometry()
		if err := a.store.Save(); err != nil {
			a.log.Warn().Err(err).Msg("failed to save window geometry")
		}
		a.Close()
		w.Close()
		fa.Quit()
	})
	return a
}

// Run shows the main window and enters the fyne event loop.
func (a *App) Run() {
	a.w.ShowAndRun()
}

// Close detaches the app from the bus.
func (a *App) Close() {
	for _, u := range a.unsubscribe {
		u()
	}
	a.unsubscribe = nil
}

// buildUI assembles the toolbar, the capture area placeholder and the status bar.
func (a *App) buildUI() {
	a.w.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(lang.X("menu.view", "View"),
			fyne.NewMenuItem(lang.X("menu.view.display_options", "Display options…"), a.ShowOptions),
		),
	))

	toolbar := widget.NewToolbar(
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.SettingsIcon(), a.ShowOptions),
	)

	placeholder := widget.NewLabelWithStyle(lang.X("status.no_capture", "No capture loaded"),
		fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	a.status = ui.NewStatusLine(lang.X("status.ready", "Ready"))
	a.summary = widget.NewLabel("")
	a.refreshSummary()

	bottom := container.NewBorder(nil, nil, nil, a.summary, a.status.CanvasObject())
	a.w.SetContent(container.NewBorder(toolbar, bottom, nil, nil, container.NewCenter(placeholder)))
}

// ShowOptions opens the modal display options dialog.
func (a *App) ShowOptions() {
	a.options.Edit(a.presenter, a.handleOptionsResult)
}

// handleOptionsResult reports the outcome of an accepted or canceled edit.
func (a *App) handleOptionsResult(ch options.Changes, err error) {
	if err != nil {
		a.status.SetText(lang.X("status.options_save_failed", "Failed to save display options"))
		dialog.ShowError(err, a.w)
		return
	}
	if ch.Any() {
		a.status.SetText(lang.X("status.options_saved", "Display options saved"))
	}
}

// handleOptionsEvent reacts to broadcasts from the options controller.
func (a *App) handleOptionsEvent(k events.Kind) {
	a.log.Info().Stringer("event", k).Msg("options changed")
	switch k {
	case events.GeneralOptionsChanged:
		a.refreshSummary()
	case events.FontOptionsChanged:
		a.applyFontOptions()
	}
}

// refreshSummary shows the enabled general options in the status bar.
func (a *App) refreshSummary() {
	if a.summary == nil {
		return
	}
	a.summary.SetText(generalSummary(a.store.Options()))
}

// generalSummary lists the enabled general options in dialog order.
func generalSummary(o config.AppOptions) string {
	var parts []string
	if o.QuickScroll {
		parts = append(parts, "quick scroll")
	}
	if o.SwapBackBufferAlways {
		parts = append(parts, "abort data")
	}
	if o.AutoScrollLatestData {
		parts = append(parts, "auto scroll")
	}
	if o.TrigPosDisplayInMid {
		parts = append(parts, "trigger mid")
	}
	if o.DisplayProfileInBar {
		parts = append(parts, "profile bar")
	}
	return strings.Join(parts, " · ")
}

// applyFontOptions rebuilds the theme from the live font options.
func (a *App) applyFontOptions() {
	o := a.store.Options()
	ui.ApplyOptionsTheme(a.fa, a.baseTheme, o, a.fontResource(o.FontName))
}

// fontResource loads the file behind family, or nil for the default font.
func (a *App) fontResource(family string) fyne.Resource {
	if family == "" || a.fonts == nil {
		return nil
	}
	b, err := a.fonts.Data(family)
	if err != nil {
		a.log.Warn().Err(err).Str("family", family).Msg("falling back to default font")
		return nil
	}
	return fyne.NewStaticResource(family+".ttf", b)
}

func (a *App) fontFamilies() []string {
	if a.fonts == nil {
		return nil
	}
	return a.fonts.Families()
}

// captureWindowGeometry copies size and, where supported, position into the
// live config.
func (a *App) captureWindowGeometry() {
	cfg := a.store.Config()
	sz := a.w.Canvas().Size()
	if sz.Width > 0 && sz.Height > 0 {
		cfg.WindowW = int(sz.Width)
		cfg.WindowH = int(sz.Height)
	}
	if p, err := windowpos.Get(a.w); err == nil {
		cfg.WindowX = p.X
		cfg.WindowY = p.Y
		cfg.WindowPosValid = true
	}
}

// restoreWindowPlacement applies the persisted window position when supported.
// The native window may not exist yet, so it retries briefly.
func (a *App) restoreWindowPlacement() {
	cfg := a.store.Config()
	if !cfg.WindowPosValid {
		return
	}
	if !windowpos.Supported {
		return
	}
	pos := windowpos.Point{X: cfg.WindowX, Y: cfg.WindowY}
	if windowpos.Apply(a.w, pos) == nil {
		return
	}
	go func() {
		const attempts = 10
		var err error
		for i := 0; i < attempts; i++ {
			time.Sleep(150 * time.Millisecond)
			if err = windowpos.Apply(a.w, pos); err == nil {
				return
			}
		}
		a.log.Debug().Err(err).Msg("could not restore window position")
	}()
}

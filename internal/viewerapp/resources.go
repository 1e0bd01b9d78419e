package viewerapp

import (
	"embed"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/lang"

	"github.com/edward-ap/scopeview/images"
)

// AppIcon is used for the app and the main window.
var AppIcon fyne.Resource = fyne.NewStaticResource("scopeview.svg", images.ScopeViewSVG)

// Bundled UI translations, one JSON file per locale.
//
//go:embed translations
var translations embed.FS

var registerOnce sync.Once

// registerTranslations adds the bundled translations to fyne's lang package.
// Lookups fall back to the English text passed to lang.X when a key or locale
// is missing.
func registerTranslations() error {
	var err error
	registerOnce.Do(func() {
		err = lang.AddTranslationsFS(translations, "translations")
	})
	return err
}

package options

import (
	"fmt"

	"github.com/rs/zerolog"

	config "github.com/edward-ap/scopeview/internal/config"
	events "github.com/edward-ap/scopeview/internal/events"
)

// Presenter shows current options for editing. It must call done exactly once,
// with accepted=false when the user cancels.
type Presenter interface {
	Present(current config.AppOptions, done func(accepted bool, edited config.AppOptions))
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(current config.AppOptions, done func(bool, config.AppOptions))

// Present calls f.
func (f PresenterFunc) Present(current config.AppOptions, done func(bool, config.AppOptions)) {
	f(current, done)
}

// Store is the part of config.Store the controller writes through.
type Store interface {
	Options() config.AppOptions
	SetOptions(config.AppOptions)
	Save() error
}

// Broadcaster publishes change notifications.
type Broadcaster interface {
	Broadcast(events.Kind)
}

// Controller applies edited options to the live configuration.
type Controller struct {
	store Store
	bus   Broadcaster
	log   zerolog.Logger
}

// NewController wires the reconciler to its collaborators.
func NewController(store Store, bus Broadcaster, log zerolog.Logger) *Controller {
	return &Controller{store: store, bus: bus, log: log}
}

// Edit presents a fresh snapshot and applies the result if the user accepts.
// The optional onDone callback receives the outcome of Apply.
func (c *Controller) Edit(p Presenter, onDone func(Changes, error)) {
	snapshot := c.store.Options()
	p.Present(snapshot, func(accepted bool, edited config.AppOptions) {
		if !accepted {
			c.log.Debug().Msg("display options dialog canceled")
			if onDone != nil {
				onDone(0, nil)
			}
			return
		}
		ch, err := c.Apply(edited)
		if onDone != nil {
			onDone(ch, err)
		}
	})
}

// Apply writes the changed categories of edited into the store, saves once if
// anything changed, then broadcasts one event per changed category.
// Invalid input is rejected before anything is written.
func (c *Controller) Apply(edited config.AppOptions) (Changes, error) {
	if err := Validate(edited); err != nil {
		return 0, err
	}
	current := c.store.Options()
	ch := Diff(current, edited)
	if !ch.Any() {
		c.log.Debug().Msg("display options unchanged")
		return 0, nil
	}

	c.store.SetOptions(merge(current, edited, ch))
	c.log.Debug().Str("changed", ch.String()).Msg("display options updated")

	var saveErr error
	if err := c.store.Save(); err != nil {
		c.log.Error().Err(err).Msg("failed to save display options")
		saveErr = fmt.Errorf("save display options: %w", err)
	}

	if ch.Has(General) {
		c.bus.Broadcast(events.GeneralOptionsChanged)
	}
	if ch.Has(Font) {
		c.bus.Broadcast(events.FontOptionsChanged)
	}
	return ch, saveErr
}

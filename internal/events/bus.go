// Package events carries application-wide change notifications from the
// component that made a change to every interested subscriber.
package events

import "sync"

// Kind identifies a notification broadcast on the Bus.
type Kind int

const (
	// GeneralOptionsChanged fires after any non-font display option changed.
	GeneralOptionsChanged Kind = iota + 1
	// FontOptionsChanged fires after the font family or a font size changed.
	FontOptionsChanged
)

// String returns the log name of the kind.
func (k Kind) String() string {
	switch k {
	case GeneralOptionsChanged:
		return "general_options_changed"
	case FontOptionsChanged:
		return "font_options_changed"
	default:
		return "unknown"
	}
}

// Handler receives broadcast notifications.
type Handler func(Kind)

type subscription struct {
	id int
	fn Handler
}

// Bus is an ordered observer list. Broadcast calls handlers synchronously on
// the caller's goroutine, in subscription order.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []subscription
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it again.
func (b *Bus) Subscribe(fn Handler) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Broadcast delivers k to every current subscriber. Handlers may subscribe or
// unsubscribe while being called; such changes apply to the next broadcast.
func (b *Bus) Broadcast(k Kind) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.fn(k)
	}
}

// subscriberCount reports the number of subscribers.
func (b *Bus) subscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

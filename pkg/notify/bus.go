package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event is an immutable lifecycle notification delivered to subscribers.
type Event struct {
	Payload  any
	ID       string
	Name     string
	Duration time.Duration
}

// Handler receives events for a subscribed name.
type Handler func(Event)

// Bus delivers named events to subscribers synchronously, on the publishing
// goroutine, in subscription order. The zero value is not usable; create a
// bus with New.
type Bus struct {
	handlers map[string][]Handler
	mu       sync.RWMutex
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers a handler for the given event name.
// Nil handlers are ignored.
func (b *Bus) Subscribe(name string, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish delivers the event to every handler subscribed to its name.
// An empty event ID is filled with a fresh UUID before delivery. A panicking
// handler does not prevent delivery to the remaining handlers.
func (b *Bus) Publish(e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	b.mu.RLock()
	handlers := b.handlers[e.Name]
	b.mu.RUnlock()

	for _, h := range handlers {
		deliver(h, e)
	}
}

// Instrument measures fn, publishes an event carrying the elapsed duration
// after fn returns, and passes fn's error through. The event is published even
// when fn fails, since failure outcomes are exactly what subscribers report.
func (b *Bus) Instrument(name string, payload any, fn func() error) error {
	start := time.Now()
	err := fn()
	b.Publish(Event{
		Name:     name,
		Payload:  payload,
		Duration: time.Since(start),
	})
	return err
}

func deliver(h Handler, e Event) {
	defer func() {
		_ = recover()
	}()
	h(e)
}

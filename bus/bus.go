package bus

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"spellcast/logger"
)

const defaultBufferSize = 128

// Handler is a function that handles events. Handlers run on the bus
// goroutine, one event at a time, in publish order; a slow handler delays
// everything behind it.
type Handler func(ctx context.Context, event *Event)

// Subscription represents a subscription to events.
type Subscription struct {
	ID        string
	EventType EventType
	Handler   Handler
}

// Bus fans events out to subscribers while preserving publish order.
// Frames from the server must reach the UI in the order they arrived, so
// dispatch is sequential rather than goroutine-per-handler.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]*Subscription

	events chan *Event
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewBus creates a new event bus with the given intake buffer.
func NewBus(bufferSize int) *Bus {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	b := &Bus{
		subs:   make(map[string]*Subscription),
		events: make(chan *Event, bufferSize),
		done:   make(chan struct{}),
	}

	b.wg.Add(1)
	go b.run()

	return b
}

// Subscribe registers a handler for a specific event type and returns the
// subscription id for Unsubscribe.
func (b *Bus) Subscribe(eventType EventType, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	b.subs[id] = &Subscription{ID: id, EventType: eventType, Handler: handler}

	logger.Debug("subscription added", "id", id, "eventType", eventType)
	return id
}

// Unsubscribe removes a subscription. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Publish queues an event without blocking. When the bus is closed or the
// intake buffer is full the event is dropped with a warning; wire traffic
// is best-effort and the server rebroadcasts room state.
func (b *Bus) Publish(event *Event) {
	select {
	case <-b.done:
		logger.Warn("bus closed, event dropped", "type", event.Type)
		return
	default:
	}

	select {
	case b.events <- event:
	case <-b.done:
		logger.Warn("bus closed, event dropped", "type", event.Type)
	default:
		logger.Warn("event buffer full, event dropped", "type", event.Type)
	}
}

// Close shuts down the bus after draining queued events.
func (b *Bus) Close() {
	close(b.done)
	b.wg.Wait()
}

// run delivers events one at a time until Close, then drains the intake.
func (b *Bus) run() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.events:
			b.dispatch(event)
		case <-b.done:
			for {
				select {
				case event := <-b.events:
					b.dispatch(event)
				default:
					return
				}
			}
		}
	}
}

// dispatch calls every matching handler inline, keeping delivery ordered.
func (b *Bus) dispatch(event *Event) {
	b.mu.RLock()
	matched := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if sub.EventType == event.Type {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	ctx := context.Background()
	for _, sub := range matched {
		deliver(ctx, sub, event)
	}
}

// deliver isolates handler panics so one bad subscriber cannot take the
// relay down with it.
func deliver(ctx context.Context, s *Subscription, event *Event) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("handler panic", "subscription", s.ID, "type", event.Type, "panic", r)
		}
	}()
	s.Handler(ctx, event)
}

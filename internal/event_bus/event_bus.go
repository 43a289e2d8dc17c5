package event_bus

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

type EventType string

// Event is what services publish. Data holds one of the payloads of
// events.go; the context carries the acting user to subscribers.
type Event struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      any
}

// NewEventAt builds an event stamped with at, normally the service clock.
func NewEventAt(ctx context.Context, eventType EventType, data any, at time.Time) Event {
	return Event{ctx: ctx, Type: eventType, Timestamp: at, Data: data}
}

func (e Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventT is an Event whose payload has already been asserted to T.
type EventT[T any] struct {
	ctx       context.Context
	Type      EventType
	Timestamp time.Time
	Data      T
}

func (e EventT[T]) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// EventBus delivers events synchronously, in subscription order, on the
// goroutine of the publisher.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[EventType][]func(Event) error
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[EventType][]func(Event) error)}
}

func (eb *EventBus) Subscribe(eventType EventType, h func(Event) error) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers[eventType] = append(eb.subscribers[eventType], h)
}

// SubscribeTyped registers h for events of eventType whose payload is a T.
// Events with another payload are skipped.
//
//	event_bus.SubscribeTyped(bus, event_bus.NoteCreatedType,
//	    func(e event_bus.EventT[event_bus.NoteCreated]) error {
//	        log.Infof("note created: %s", e.Data.Title)
//	        return nil
//	    })
func SubscribeTyped[T any](eb *EventBus, eventType EventType, h func(EventT[T]) error) {
	eb.Subscribe(eventType, func(e Event) error {
		payload, ok := e.Data.(T)
		if !ok {
			log.Debugf("event bus: %s carries %T, subscriber expects %T", eventType, e.Data, *new(T))
			return nil
		}
		return h(EventT[T]{ctx: e.ctx, Type: e.Type, Timestamp: e.Timestamp, Data: payload})
	})
}

// Publish runs every subscriber of e.Type. A failing or panicking subscriber
// does not stop the others; all failures are joined into the returned error.
// Subscribers are skipped once the event context is cancelled.
func (eb *EventBus) Publish(e Event) error {
	eb.mu.RLock()
	handlers := append([]func(Event) error(nil), eb.subscribers[e.Type]...)
	eb.mu.RUnlock()

	var errs []error
	for i, h := range handlers {
		if err := e.Context().Err(); err != nil {
			errs = append(errs, fmt.Errorf("context cancelled before subscriber %d: %w", i, err))
			break
		}
		if err := dispatch(h, e); err != nil {
			log.Errorf("event bus: subscriber %d of %s failed: %v", i, e.Type, err)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("event %s: %d subscriber(s) failed: %w", e.Type, len(errs), errors.Join(errs...))
	}
	return nil
}

func dispatch(h func(Event) error, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()
	return h(e)
}

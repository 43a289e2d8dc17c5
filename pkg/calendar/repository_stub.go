package calendar

import (
	"context"
	"sort"

	"github.com/klokku/creatordash/internal/store"
)

type RepositoryStub struct {
	events *store.Partitioned[Event]
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{events: store.NewPartitioned(func(e Event) string { return e.ID })}
}

func (r *RepositoryStub) StoreEvents(ctx context.Context, userId int, events []Event) error {
	c := r.events.For(userId)
	for _, e := range events {
		c.Add(e)
	}
	return nil
}

func (r *RepositoryStub) GetEvents(ctx context.Context, userId int) ([]Event, error) {
	return sortByDateTime(r.events.For(userId).Snapshot()), nil
}

func (r *RepositoryStub) GetEventsBetween(ctx context.Context, userId int, from, to string) ([]Event, error) {
	events := r.events.For(userId).Filter(func(e Event) bool {
		return e.Date >= from && e.Date <= to
	})
	return sortByDateTime(events), nil
}

func (r *RepositoryStub) UpdateEvent(ctx context.Context, userId int, event Event) (Event, error) {
	updated, ok := r.events.For(userId).Update(event.ID, func(Event) Event { return event })
	if !ok {
		return Event{}, ErrEventNotFound
	}
	return updated, nil
}

func (r *RepositoryStub) DeleteEvent(ctx context.Context, userId int, eventId string) error {
	if !r.events.For(userId).Remove(eventId) {
		return ErrEventNotFound
	}
	return nil
}

// sortByDateTime orders by date and time; events at the same minute keep
// insertion order, which the collection stores newest first.
func sortByDateTime(events []Event) []Event {
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})
	return events
}

package activity

import (
	"context"
	"fmt"
	"sync"

	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/pkg/user"
)

// Feed keeps the most recent activities of every user, newest first.
type Feed struct {
	mu      sync.RWMutex
	entries map[int][]Activity
	limit   int
}

func NewFeed(limit int) *Feed {
	return &Feed{entries: make(map[int][]Activity), limit: limit}
}

// Subscribe registers the feed on every dashboard event of the bus.
func (f *Feed) Subscribe(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.VideoUploadedType, func(e event_bus.EventT[event_bus.VideoUploaded]) error {
		f.Record(e.Data.UserId, Activity{Action: "New video uploaded", Type: VideoActivity, At: e.Timestamp})
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.BackgroundUploadedType, func(e event_bus.EventT[event_bus.BackgroundUploaded]) error {
		f.Record(e.Data.UserId, Activity{Action: "Background image added", Type: ImageActivity, At: e.Timestamp})
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.AccountAddedType, func(e event_bus.EventT[event_bus.AccountAdded]) error {
		f.Record(e.Data.UserId, Activity{Action: "Account added", Type: AccountActivity, At: e.Timestamp})
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.LinkCreatedType, func(e event_bus.EventT[event_bus.LinkCreated]) error {
		f.Record(e.Data.UserId, Activity{Action: "Link created", Type: LinkActivity, At: e.Timestamp})
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.NoteCreatedType, func(e event_bus.EventT[event_bus.NoteCreated]) error {
		f.Record(e.Data.UserId, Activity{Action: "Note created", Type: NoteActivity, At: e.Timestamp})
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventCreatedType, func(e event_bus.EventT[event_bus.CalendarEventCreated]) error {
		f.Record(e.Data.UserId, Activity{Action: "Event scheduled: " + e.Data.Title, Type: EventActivity, At: e.Timestamp})
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.AutomationRunCompletedType, func(e event_bus.EventT[event_bus.AutomationRunCompleted]) error {
		action := fmt.Sprintf("Automation completed %d tasks", e.Data.TasksCompleted)
		f.Record(e.Data.UserId, Activity{Action: action, Type: AutomationActivity, At: e.Timestamp})
		return nil
	})
}

// Record prepends a to the user's feed, dropping the oldest entries beyond
// the limit.
func (f *Feed) Record(userId int, a Activity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	current := f.entries[userId]
	size := len(current) + 1
	if size > f.limit {
		size = f.limit
	}
	next := make([]Activity, 0, size)
	next = append(next, a)
	next = append(next, current[:size-1]...)
	f.entries[userId] = next
}

func (f *Feed) Recent(ctx context.Context) ([]Activity, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append(make([]Activity, 0, len(f.entries[userId])), f.entries[userId]...), nil
}

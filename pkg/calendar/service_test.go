package calendar

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/internal/validation"
	"github.com/klokku/creatordash/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var location, _ = time.LoadLocation("Europe/Warsaw")

func setupServiceTest(t *testing.T) (*Service, context.Context, *utils.MockClock, *event_bus.EventBus) {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.October, 15, 9, 30, 0, 0, location)}
	bus := event_bus.NewEventBus()
	service := NewService(NewRepositoryStub(), validation.New(), bus, clock, Settings{
		Location:           location,
		ImportWindowMonths: 12,
		MaxOccurrences:     100,
	})
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Uid: "user-1", Name: "Test User"})
	return service, ctx, clock, bus
}

func TestService_AddEvent(t *testing.T) {
	t.Run("stores the event and publishes its creation", func(t *testing.T) {
		service, ctx, _, bus := setupServiceTest(t)
		var published []event_bus.CalendarEventCreated
		event_bus.SubscribeTyped(bus, event_bus.CalendarEventCreatedType, func(e event_bus.EventT[event_bus.CalendarEventCreated]) error {
			published = append(published, e.Data)
			return nil
		})

		event, err := service.AddEvent(ctx, EventInput{Title: "Team Meeting", Date: "2025-10-26", Time: "10:00", Category: "meeting"})
		require.NoError(t, err)

		assert.NotEmpty(t, event.ID)
		assert.Equal(t, Meeting, event.Category)
		events, err := service.ListEvents(ctx)
		require.NoError(t, err)
		assert.Equal(t, []Event{event}, events)
		require.Len(t, published, 1)
		assert.Equal(t, event.ID, published[0].Id)
		assert.Equal(t, 1, published[0].UserId)
	})

	t.Run("rejects an impossible date", func(t *testing.T) {
		service, ctx, _, _ := setupServiceTest(t)

		_, err := service.AddEvent(ctx, EventInput{Title: "Nope", Date: "2025-02-30", Time: "10:00", Category: "task"})

		var validationErr *validation.Error
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "date")
	})

	t.Run("rejects an unknown category", func(t *testing.T) {
		service, ctx, _, _ := setupServiceTest(t)

		_, err := service.AddEvent(ctx, EventInput{Title: "Party", Date: "2025-10-26", Time: "20:00", Category: "party"})

		var validationErr *validation.Error
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "type")
	})

	t.Run("requires a user", func(t *testing.T) {
		service, _, _, _ := setupServiceTest(t)

		_, err := service.AddEvent(context.Background(), EventInput{Title: "x", Date: "2025-10-26", Time: "10:00", Category: "task"})

		assert.ErrorIs(t, err, user.ErrNoUser)
	})
}

func TestService_UpdateAndDeleteEvent(t *testing.T) {
	service, ctx, _, _ := setupServiceTest(t)
	event, err := service.AddEvent(ctx, EventInput{Title: "Deadline", Date: "2025-10-28", Time: "17:00", Category: "task"})
	require.NoError(t, err)

	updated, err := service.UpdateEvent(ctx, event.ID, EventInput{Title: "Deadline moved", Date: "2025-10-29", Time: "12:00", Category: "task"})
	require.NoError(t, err)
	assert.Equal(t, event.ID, updated.ID)
	assert.Equal(t, "Deadline moved", updated.Title)

	onOldDate, err := service.EventsOnDate(ctx, "2025-10-28")
	require.NoError(t, err)
	assert.Empty(t, onOldDate)

	require.NoError(t, service.DeleteEvent(ctx, event.ID))
	assert.ErrorIs(t, service.DeleteEvent(ctx, event.ID), ErrEventNotFound)

	_, err = service.UpdateEvent(ctx, "missing", EventInput{Title: "x", Date: "2025-10-29", Time: "12:00", Category: "task"})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestService_EventsAreIsolatedPerUser(t *testing.T) {
	service, ctx, _, _ := setupServiceTest(t)
	otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Uid: "user-2"})

	_, err := service.AddEvent(ctx, EventInput{Title: "Mine", Date: "2025-10-26", Time: "10:00", Category: "meeting"})
	require.NoError(t, err)

	events, err := service.ListEvents(otherCtx)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestService_View(t *testing.T) {
	t.Run("starts at the month of the clock", func(t *testing.T) {
		service, ctx, _, _ := setupServiceTest(t)

		view, grid, err := service.View(ctx)
		require.NoError(t, err)

		assert.Equal(t, DisplayedMonth{Year: 2025, Month: 9}, view.Displayed)
		assert.Equal(t, "October 2025", grid.Title)
		today, _ := grid.Cell(15)
		assert.True(t, today.Today)
	})

	t.Run("navigates across year boundaries", func(t *testing.T) {
		service, ctx, _, _ := setupServiceTest(t)

		var view View
		var err error
		for i := 0; i < 3; i++ {
			view, _, err = service.NextMonth(ctx)
			require.NoError(t, err)
		}
		assert.Equal(t, DisplayedMonth{Year: 2026, Month: 0}, view.Displayed)

		view, grid, err := service.PreviousMonth(ctx)
		require.NoError(t, err)
		assert.Equal(t, DisplayedMonth{Year: 2025, Month: 11}, view.Displayed)
		assert.Equal(t, "December 2025", grid.Title)
	})

	t.Run("selection is highlighted and survives navigation", func(t *testing.T) {
		service, ctx, _, _ := setupServiceTest(t)

		view, grid, err := service.SelectDate(ctx, "2025-10-20")
		require.NoError(t, err)
		assert.Equal(t, "2025-10-20", view.Selected)
		cell, _ := grid.Cell(20)
		assert.True(t, cell.Selected)

		view, _, err = service.SelectDate(ctx, "2025-10-20")
		require.NoError(t, err)
		assert.Equal(t, "2025-10-20", view.Selected)

		_, _, err = service.NextMonth(ctx)
		require.NoError(t, err)
		view, _, err = service.PreviousMonth(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2025-10-20", view.Selected)
	})

	t.Run("rejects a malformed selection", func(t *testing.T) {
		service, ctx, _, _ := setupServiceTest(t)

		_, _, err := service.SelectDate(ctx, "20-10-2025")

		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("grid contains only the events of the displayed month", func(t *testing.T) {
		service, ctx, _, _ := setupServiceTest(t)
		_, err := service.AddEvent(ctx, EventInput{Title: "Team Meeting", Date: "2025-10-26", Time: "10:00", Category: "meeting"})
		require.NoError(t, err)
		_, err = service.AddEvent(ctx, EventInput{Title: "Later", Date: "2025-11-02", Time: "10:00", Category: "task"})
		require.NoError(t, err)

		grid, err := service.Grid(ctx, DisplayedMonth{Year: 2025, Month: 9})
		require.NoError(t, err)

		total := 0
		for _, c := range grid.Cells {
			total += len(c.Events)
		}
		assert.Equal(t, 1, total)
	})
}

func TestService_ExportAndImport(t *testing.T) {
	service, ctx, _, _ := setupServiceTest(t)
	_, err := service.AddEvent(ctx, EventInput{Title: "Team Meeting", Date: "2025-10-26", Time: "10:00", Category: "meeting"})
	require.NoError(t, err)
	_, err = service.AddEvent(ctx, EventInput{Title: "Project Deadline", Date: "2025-10-28", Time: "17:00", Category: "task"})
	require.NoError(t, err)

	ics, err := service.ExportICS(ctx)
	require.NoError(t, err)
	assert.Contains(t, ics, "SUMMARY:Team Meeting")
	assert.Contains(t, ics, "CATEGORIES:task")

	csv, err := service.ExportCSV(ctx)
	require.NoError(t, err)
	assert.Equal(t, "date,time,title,category\n2025-10-26,10:00,Team Meeting,meeting\n2025-10-28,17:00,Project Deadline,task\n", csv)

	otherCtx := user.WithUser(context.Background(), user.User{Id: 2, Uid: "user-2"})
	imported, err := service.Import(otherCtx, strings.NewReader(ics))
	require.NoError(t, err)
	require.Len(t, imported, 2)

	events, err := service.ListEvents(otherCtx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Team Meeting", events[0].Title)
	assert.Equal(t, "2025-10-26", events[0].Date)
	assert.Equal(t, "10:00", events[0].Time)
	assert.Equal(t, Meeting, events[0].Category)
	assert.Equal(t, Task, events[1].Category)
}

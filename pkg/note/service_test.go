package note

import (
	"context"
	"testing"
	"time"

	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/internal/validation"
	"github.com/klokku/creatordash/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T) (*ServiceImpl, context.Context, *utils.MockClock, *event_bus.EventBus) {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.October, 20, 10, 0, 0, 0, time.UTC)}
	bus := event_bus.NewEventBus()
	service := NewService(NewRepositoryStub(), validation.New(), bus, clock)
	ctx := user.WithUser(context.Background(), user.User{Id: 1, Uid: "user-1"})
	return service, ctx, clock, bus
}

func TestCreateNote(t *testing.T) {
	t.Run("blank title falls back to the default", func(t *testing.T) {
		service, ctx, _, _ := setupServiceTest(t)

		note, err := service.CreateNote(ctx, NoteInput{Title: "  "})
		require.NoError(t, err)

		assert.Equal(t, DefaultTitle, note.Title)
		assert.Equal(t, "2025-10-20", note.DateCreated)
		assert.Equal(t, "2025-10-20", note.DateModified)
	})

	t.Run("newest note comes first and creation is published", func(t *testing.T) {
		service, ctx, _, bus := setupServiceTest(t)
		var titles []string
		event_bus.SubscribeTyped(bus, event_bus.NoteCreatedType, func(e event_bus.EventT[event_bus.NoteCreated]) error {
			titles = append(titles, e.Data.Title)
			return nil
		})

		_, err := service.CreateNote(ctx, NoteInput{Title: "Meeting Notes"})
		require.NoError(t, err)
		_, err = service.CreateNote(ctx, NoteInput{Title: "Ideas"})
		require.NoError(t, err)

		notes, err := service.ListNotes(ctx)
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, "Ideas", notes[0].Title)
		assert.Equal(t, "Meeting Notes", notes[1].Title)
		assert.Equal(t, []string{"Meeting Notes", "Ideas"}, titles)
	})
}

func TestSaveNote(t *testing.T) {
	service, ctx, clock, _ := setupServiceTest(t)
	created, err := service.CreateNote(ctx, NoteInput{Title: "Ideas", Content: "first"})
	require.NoError(t, err)
	clock.Advance(48 * time.Hour)

	saved, err := service.SaveNote(ctx, created.ID, NoteInput{Title: "Ideas v2", Content: "second"})
	require.NoError(t, err)

	assert.Equal(t, "Ideas v2", saved.Title)
	assert.Equal(t, "second", saved.Content)
	assert.Equal(t, "2025-10-20", saved.DateCreated)
	assert.Equal(t, "2025-10-22", saved.DateModified)

	_, err = service.SaveNote(ctx, "missing", NoteInput{Title: "x"})
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestDeleteNote(t *testing.T) {
	service, ctx, _, _ := setupServiceTest(t)
	created, err := service.CreateNote(ctx, NoteInput{Title: "Temp"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteNote(ctx, created.ID))

	notes, err := service.ListNotes(ctx)
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.ErrorIs(t, service.DeleteNote(ctx, created.ID), ErrNoteNotFound)
}

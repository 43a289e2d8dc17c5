package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSource_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	content := `[
		{"id": "1", "title": "Team Meeting", "date": "2025-10-26", "time": "10:00", "type": "meeting"},
		{"id": "2", "title": "Party", "date": "2025-10-27", "time": "20:00", "type": "party"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)}

	events, err := FileSource{Path: path, Location: time.UTC, Clock: clock}.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, calendar.Meeting, events[0].Category)
	assert.Equal(t, calendar.Reminder, events[1].Category)
}

func TestFileSource_ICS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.ics")
	content := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//test//EN\r\nBEGIN:VEVENT\r\nUID:a\r\nDTSTAMP:20251001T000000Z\r\nDTSTART:20251026T100000Z\r\nSUMMARY:Team Meeting\r\nCATEGORIES:meeting\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)}

	events, err := FileSource{Path: path, Location: time.UTC, Clock: clock}.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "2025-10-26", events[0].Date)
	assert.Equal(t, "10:00", events[0].Time)
	assert.Equal(t, calendar.Meeting, events[0].Category)
}

func TestFileSource_Missing(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.json"), Location: time.UTC, Clock: &utils.SystemClock{}}.Load(context.Background())
	assert.Error(t, err)
}

func TestServerSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/calendar/event" || r.Header.Get("X-User-Id") != "user-1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_ = json.NewEncoder(w).Encode(testEvents)
	}))
	defer server.Close()

	events, err := ServerSource{BaseURL: server.URL + "/", Uid: "user-1", Client: server.Client()}.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testEvents, events)

	_, err = ServerSource{BaseURL: server.URL, Uid: "someone", Client: server.Client()}.Load(context.Background())
	assert.ErrorContains(t, err, "403")
}

func TestWatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))
	changed := make(chan struct{}, 10)

	watcher, err := WatchFile(path, func() { changed <- struct{}{} })
	require.NoError(t, err)
	defer watcher.Close()

	require.NoError(t, os.WriteFile(path, []byte(`[{"id":"1"}]`), 0o600))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
}

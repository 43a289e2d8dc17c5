package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/internal/validation"
	"github.com/klokku/creatordash/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A middleware that sets the user in the context
func withTestUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := user.WithUser(r.Context(), user.User{Id: 1, Uid: "user-1"})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func setupHandlerTest(t *testing.T) http.Handler {
	service, _, _, _ := setupServiceTest(t)
	handler := NewHandler(service)

	r := mux.NewRouter()
	r.Use(withTestUser)
	r.HandleFunc("/api/calendar/event", handler.GetEvents).Methods("GET")
	r.HandleFunc("/api/calendar/event", handler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/calendar/event/{eventId}", handler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/calendar/event/{eventId}", handler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/calendar/grid", handler.GetGrid).Methods("GET")
	r.HandleFunc("/api/calendar/view", handler.GetView).Methods("GET")
	r.HandleFunc("/api/calendar/view/next", handler.NextMonth).Methods("POST")
	r.HandleFunc("/api/calendar/view/selection", handler.SelectDate).Methods("PUT")
	r.HandleFunc("/api/calendar/export.csv", handler.ExportCSV).Methods("GET")
	r.HandleFunc("/api/calendar/import", handler.Import).Methods("POST")
	return r
}

func doRequest(h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func createTestEvent(t *testing.T, h http.Handler, input EventInput) Event {
	w := doRequest(h, http.MethodPost, "/api/calendar/event", input)
	require.Equal(t, http.StatusCreated, w.Code)
	var created Event
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	return created
}

func TestHandler_CreateAndListEvents(t *testing.T) {
	h := setupHandlerTest(t)
	created := createTestEvent(t, h, EventInput{Title: "Team Meeting", Date: "2025-10-26", Time: "10:00", Category: "meeting"})
	createTestEvent(t, h, EventInput{Title: "Project Deadline", Date: "2025-10-28", Time: "17:00", Category: "task"})

	w := doRequest(h, http.MethodGet, "/api/calendar/event?date=2025-10-26", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var events []Event
	require.NoError(t, json.NewDecoder(w.Body).Decode(&events))
	assert.Equal(t, []Event{created}, events)

	w = doRequest(h, http.MethodGet, "/api/calendar/event?date=2025-10-27", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestHandler_CreateEvent_InvalidBody(t *testing.T) {
	h := setupHandlerTest(t)

	w := doRequest(h, http.MethodPost, "/api/calendar/event", EventInput{Title: "", Date: "2025-10-26", Time: "25:00", Category: "meeting"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
	assert.Equal(t, "Invalid event", errResponse.Error)
	assert.Contains(t, errResponse.Details, "title")
	assert.Contains(t, errResponse.Details, "time")
}

func TestHandler_UpdateAndDeleteEvent(t *testing.T) {
	h := setupHandlerTest(t)
	created := createTestEvent(t, h, EventInput{Title: "Team Meeting", Date: "2025-10-26", Time: "10:00", Category: "meeting"})

	w := doRequest(h, http.MethodPut, "/api/calendar/event/"+created.ID, EventInput{Title: "Team Sync", Date: "2025-10-27", Time: "11:00", Category: "meeting"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(h, http.MethodDelete, "/api/calendar/event/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(h, http.MethodDelete, "/api/calendar/event/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandler_GetGrid(t *testing.T) {
	h := setupHandlerTest(t)
	createTestEvent(t, h, EventInput{Title: "Team Meeting", Date: "2025-10-26", Time: "10:00", Category: "meeting"})

	t.Run("returns the grid of the requested month", func(t *testing.T) {
		w := doRequest(h, http.MethodGet, "/api/calendar/grid?year=2025&month=9", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var grid Grid
		require.NoError(t, json.NewDecoder(w.Body).Decode(&grid))
		assert.Equal(t, "October 2025", grid.Title)
		assert.Equal(t, 3, grid.Leading)
		cell, ok := grid.Cell(26)
		require.True(t, ok)
		require.Len(t, cell.Events, 1)
		assert.Equal(t, "Team Meeting", cell.Events[0].Title)
	})

	t.Run("rejects a one-based month", func(t *testing.T) {
		w := doRequest(h, http.MethodGet, "/api/calendar/grid?year=2025&month=12", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects a missing year", func(t *testing.T) {
		w := doRequest(h, http.MethodGet, "/api/calendar/grid?month=1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_ViewNavigation(t *testing.T) {
	h := setupHandlerTest(t)

	w := doRequest(h, http.MethodGet, "/api/calendar/view", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dto ViewDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Equal(t, DisplayedMonth{Year: 2025, Month: 9}, dto.View.Displayed)

	w = doRequest(h, http.MethodPost, "/api/calendar/view/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Equal(t, "November 2025", dto.Grid.Title)

	w = doRequest(h, http.MethodPut, "/api/calendar/view/selection", SelectionDTO{Date: "2025-11-03"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	assert.Equal(t, "2025-11-03", dto.View.Selected)

	w = doRequest(h, http.MethodPut, "/api/calendar/view/selection", SelectionDTO{Date: "tomorrow"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ExportCSVAndImport(t *testing.T) {
	h := setupHandlerTest(t)
	createTestEvent(t, h, EventInput{Title: "Team Meeting", Date: "2025-10-26", Time: "10:00", Category: "meeting"})

	w := doRequest(h, http.MethodGet, "/api/calendar/export.csv", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "2025-10-26,10:00,Team Meeting,meeting")

	req := httptest.NewRequest(http.MethodPost, "/api/calendar/import", bytes.NewBufferString(""))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type failingRepository struct {
	*RepositoryStub
}

func (failingRepository) StoreEvents(ctx context.Context, userId int, events []Event) error {
	return errors.New("connection reset")
}

func TestHandler_ImportStorageFailure(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.October, 15, 9, 30, 0, 0, time.UTC)}
	service := NewService(failingRepository{NewRepositoryStub()}, validation.New(), event_bus.NewEventBus(), clock, Settings{
		Location:           time.UTC,
		ImportWindowMonths: 12,
		MaxOccurrences:     100,
	})
	r := mux.NewRouter()
	r.Use(withTestUser)
	r.HandleFunc("/api/calendar/import", NewHandler(service).Import).Methods("POST")

	req := httptest.NewRequest(http.MethodPost, "/api/calendar/import", strings.NewReader(weeklyStandup))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

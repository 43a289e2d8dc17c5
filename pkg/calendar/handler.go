package calendar

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/klokku/creatordash/internal/rest"
	"github.com/klokku/creatordash/internal/validation"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	calendar *Service
}

type ViewDTO struct {
	View View `json:"view"`
	Grid Grid `json:"grid"`
}

type SelectionDTO struct {
	Date string `json:"date"`
}

type ImportResultDTO struct {
	Imported int     `json:"imported"`
	Events   []Event `json:"events"`
}

func NewHandler(s *Service) *Handler {
	return &Handler{s}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting calendar events")

	var events []Event
	var err error
	if date := r.URL.Query().Get("date"); date != "" {
		events, err = h.calendar.EventsOnDate(r.Context(), date)
	} else {
		events, err = h.calendar.ListEvents(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input EventInput
	if !rest.DecodeJSON(w, r, &input) {
		return
	}

	event, err := h.calendar.AddEvent(r.Context(), input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, event)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var input EventInput
	if !rest.DecodeJSON(w, r, &input) {
		return
	}

	event, err := h.calendar.UpdateEvent(r.Context(), mux.Vars(r)["eventId"], input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, event)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	err := h.calendar.DeleteEvent(r.Context(), mux.Vars(r)["eventId"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "'year' must be an integer")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 0 || month > 11 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", "'month' must be a zero-based month index (0-11)")
		return
	}

	grid, err := h.calendar.Grid(r.Context(), DisplayedMonth{Year: year, Month: month})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, grid)
}

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	h.writeView(w)(h.calendar.View(r.Context()))
}

func (h *Handler) NextMonth(w http.ResponseWriter, r *http.Request) {
	h.writeView(w)(h.calendar.NextMonth(r.Context()))
}

func (h *Handler) PreviousMonth(w http.ResponseWriter, r *http.Request) {
	h.writeView(w)(h.calendar.PreviousMonth(r.Context()))
}

func (h *Handler) SelectDate(w http.ResponseWriter, r *http.Request) {
	var selection SelectionDTO
	if !rest.DecodeJSON(w, r, &selection) {
		return
	}
	h.writeView(w)(h.calendar.SelectDate(r.Context(), selection.Date))
}

func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	body, err := h.calendar.ExportICS(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Errorf("failed to write ics export: %v", err)
	}
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	body, err := h.calendar.ExportCSV(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Errorf("failed to write csv export: %v", err)
	}
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	events, err := h.calendar.Import(r.Context(), r.Body)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyCalendar):
			rest.WriteError(w, http.StatusBadRequest, "Empty calendar", "request body must be an iCalendar document")
		case errors.Is(err, ErrInvalidCalendar):
			rest.WriteError(w, http.StatusBadRequest, "Invalid calendar", err.Error())
		default:
			log.Errorf("failed to import calendar: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	rest.WriteJSON(w, http.StatusCreated, ImportResultDTO{Imported: len(events), Events: events})
}

func (h *Handler) writeView(w http.ResponseWriter) func(View, Grid, error) {
	return func(view View, grid Grid, err error) {
		if err != nil {
			h.writeError(w, err)
			return
		}
		rest.WriteJSON(w, http.StatusOK, ViewDTO{View: view, Grid: grid})
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", validationErr.Error())
	case errors.Is(err, ErrInvalidCategory), errors.Is(err, ErrInvalidDate):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", err.Error())
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

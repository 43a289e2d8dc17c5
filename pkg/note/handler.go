package note

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/creatordash/internal/rest"
	"github.com/klokku/creatordash/internal/validation"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	notes Service
}

func NewHandler(notes Service) *Handler {
	return &Handler{notes: notes}
}

func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing notes")
	notes, err := h.notes.ListNotes(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, notes)
}

func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var input NoteInput
	if r.ContentLength != 0 && !rest.DecodeJSON(w, r, &input) {
		return
	}
	note, err := h.notes.CreateNote(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, note)
}

func (h *Handler) SaveNote(w http.ResponseWriter, r *http.Request) {
	var input NoteInput
	if !rest.DecodeJSON(w, r, &input) {
		return
	}
	note, err := h.notes.SaveNote(r.Context(), mux.Vars(r)["noteId"], input)
	if err != nil {
		writeError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, note)
}

func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.DeleteNote(r.Context(), mux.Vars(r)["noteId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		rest.WriteError(w, http.StatusBadRequest, "Invalid note", validationErr.Error())
	case errors.Is(err, ErrNoteNotFound):
		rest.WriteError(w, http.StatusNotFound, "Note not found", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

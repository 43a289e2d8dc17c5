package automation

import (
	"errors"
	"net/http"

	"github.com/klokku/creatordash/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	automation *Service
}

func NewHandler(automation *Service) *Handler {
	return &Handler{automation: automation}
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting automation state")
	h.write(w)(h.automation.State(r.Context()))
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	log.Debug("Starting automation")
	h.write(w)(h.automation.Start(r.Context()))
}

func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	log.Debug("Pausing automation")
	h.write(w)(h.automation.Pause(r.Context()))
}

func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	log.Debug("Stopping automation")
	h.write(w)(h.automation.Stop(r.Context()))
}

func (h *Handler) write(w http.ResponseWriter) func(State, error) {
	return func(state State, err error) {
		if err != nil {
			switch {
			case errors.Is(err, ErrAlreadyRunning), errors.Is(err, ErrNotRunning), errors.Is(err, ErrAlreadyIdle):
				rest.WriteError(w, http.StatusConflict, "Invalid automation transition", err.Error())
			case errors.Is(err, ErrShuttingDown):
				rest.WriteError(w, http.StatusServiceUnavailable, "Automation unavailable", err.Error())
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		rest.WriteJSON(w, http.StatusOK, state)
	}
}

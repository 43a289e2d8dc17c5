package background

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/creatordash/internal/rest"
	"github.com/klokku/creatordash/pkg/media"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	backgrounds Service
	maxMemory   int64
}

func NewHandler(backgrounds Service, maxMemory int64) *Handler {
	return &Handler{backgrounds: backgrounds, maxMemory: maxMemory}
}

func (h *Handler) ListBackgrounds(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing backgrounds")
	backgrounds, err := h.backgrounds.ListBackgrounds(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, backgrounds)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	uploads, err := media.ReadUploads(r, h.maxMemory, "image/")
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) {
			rest.WriteError(w, http.StatusUnsupportedMediaType, "Only image files are accepted", err.Error())
			return
		}
		rest.WriteError(w, http.StatusBadRequest, "Invalid upload", err.Error())
		return
	}
	log.Debugf("Uploading %d backgrounds", len(uploads))

	backgrounds, err := h.backgrounds.Upload(r.Context(), uploads)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, backgrounds)
}

func (h *Handler) DeleteBackground(w http.ResponseWriter, r *http.Request) {
	if err := h.backgrounds.DeleteBackground(r.Context(), mux.Vars(r)["backgroundId"]); err != nil {
		if errors.Is(err, ErrBackgroundNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Background not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

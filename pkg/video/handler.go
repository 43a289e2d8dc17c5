package video

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/creatordash/internal/rest"
	"github.com/klokku/creatordash/pkg/media"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	videos    Service
	maxMemory int64
}

func NewHandler(videos Service, maxMemory int64) *Handler {
	return &Handler{videos: videos, maxMemory: maxMemory}
}

func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing videos")
	videos, err := h.videos.ListVideos(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, videos)
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	uploads, err := media.ReadUploads(r, h.maxMemory, "video/")
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) {
			rest.WriteError(w, http.StatusUnsupportedMediaType, "Only video files are accepted", err.Error())
			return
		}
		rest.WriteError(w, http.StatusBadRequest, "Invalid upload", err.Error())
		return
	}
	log.Debugf("Uploading %d videos", len(uploads))

	videos, err := h.videos.Upload(r.Context(), uploads)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, videos)
}

func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	if err := h.videos.DeleteVideo(r.Context(), mux.Vars(r)["videoId"]); err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Video not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

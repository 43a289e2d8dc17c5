package dashboard

import (
	"net/http"

	"github.com/klokku/creatordash/internal/rest"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	dashboard *Service
}

func NewHandler(dashboard *Service) *Handler {
	return &Handler{dashboard: dashboard}
}

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting dashboard overview")
	overview, err := h.dashboard.Overview(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, overview)
}

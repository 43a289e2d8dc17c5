package link

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/creatordash/internal/rest"
	"github.com/klokku/creatordash/internal/validation"
	log "github.com/sirupsen/logrus"
)

type LinkDTO struct {
	Link
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type Handler struct {
	links Service
}

func NewHandler(links Service) *Handler {
	return &Handler{links: links}
}

func (h *Handler) ListLinks(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing links")
	links, err := h.links.ListLinks(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]LinkDTO, 0, len(links))
	for _, l := range links {
		dtos = append(dtos, linkToDTO(l))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) AddLink(w http.ResponseWriter, r *http.Request) {
	var input LinkInput
	if !rest.DecodeJSON(w, r, &input) {
		return
	}
	l, err := h.links.AddLink(r.Context(), input)
	if err != nil {
		var validationErr *validation.Error
		switch {
		case errors.As(err, &validationErr):
			rest.WriteError(w, http.StatusBadRequest, "Invalid link", validationErr.Error())
		case errors.Is(err, ErrInvalidPlatform):
			rest.WriteError(w, http.StatusBadRequest, "Invalid link", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	rest.WriteJSON(w, http.StatusCreated, linkToDTO(l))
}

func (h *Handler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	if err := h.links.DeleteLink(r.Context(), mux.Vars(r)["linkId"]); err != nil {
		if errors.Is(err, ErrLinkNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Link not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func linkToDTO(l Link) LinkDTO {
	return LinkDTO{Link: l, Color: l.Platform.Color(), Icon: l.Platform.Icon()}
}

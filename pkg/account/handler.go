package account

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/creatordash/internal/rest"
	"github.com/klokku/creatordash/internal/validation"
	log "github.com/sirupsen/logrus"
)

type AccountDTO struct {
	Account
	ProfileURL  string `json:"profileUrl"`
	StatusColor string `json:"statusColor"`
}

type Handler struct {
	accounts Service
}

func NewHandler(accounts Service) *Handler {
	return &Handler{accounts: accounts}
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	log.Trace("Listing accounts")
	accounts, err := h.accounts.ListAccounts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]AccountDTO, 0, len(accounts))
	for _, a := range accounts {
		dtos = append(dtos, accountToDTO(a))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) AddAccount(w http.ResponseWriter, r *http.Request) {
	var input AccountInput
	if !rest.DecodeJSON(w, r, &input) {
		return
	}
	a, err := h.accounts.AddAccount(r.Context(), input)
	if err != nil {
		var validationErr *validation.Error
		switch {
		case errors.As(err, &validationErr):
			rest.WriteError(w, http.StatusBadRequest, "Invalid account", validationErr.Error())
		case errors.Is(err, ErrInvalidCountry):
			rest.WriteError(w, http.StatusBadRequest, "Invalid account", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	rest.WriteJSON(w, http.StatusCreated, accountToDTO(a))
}

func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.accounts.DeleteAccount(r.Context(), mux.Vars(r)["accountId"]); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Account not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func accountToDTO(a Account) AccountDTO {
	return AccountDTO{Account: a, ProfileURL: a.ProfileURL(), StatusColor: a.Status.Color()}
}

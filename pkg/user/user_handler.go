package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/klokku/creatordash/internal/rest"
	"github.com/klokku/creatordash/internal/validation"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid       string    `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering user")

	var registration Registration
	if !rest.DecodeJSON(w, r, &registration) {
		return
	}

	createdUser, err := h.userService.Register(r.Context(), registration)
	if err != nil {
		var validationErr *validation.Error
		switch {
		case errors.As(err, &validationErr):
			rest.WriteError(w, http.StatusBadRequest, "Invalid user data", validationErr.Error())
		case errors.Is(err, ErrEmailTaken):
			rest.WriteError(w, http.StatusConflict, "Email already registered", "")
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	rest.WriteJSON(w, http.StatusCreated, userToDTO(createdUser))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log.Debug("Logging in")

	var login LoginDTO
	if !rest.DecodeJSON(w, r, &login) {
		return
	}

	u, err := h.userService.Login(r.Context(), login.Email, login.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			rest.WriteError(w, http.StatusUnauthorized, "Invalid email or password", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, userToDTO(u))
}

// Logout is a no-op: sessions are not tracked server side, the client drops
// the user id.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting current user")

	currentUser, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			rest.WriteError(w, http.StatusNotFound, "User not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rest.WriteJSON(w, http.StatusOK, userToDTO(currentUser))
}

func userToDTO(u User) UserDTO {
	return UserDTO{
		Uid:       u.Uid,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

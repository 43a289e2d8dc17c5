package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/klokku/creatordash/internal/rest"
	"github.com/klokku/creatordash/pkg/user"
	log "github.com/sirupsen/logrus"
)

const userIdHeader = "X-User-Id"

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {

	// Propagate X-User-Id header into context for downstream services
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			uid := req.Header.Get(userIdHeader)
			ctx := req.Context()

			if uid != "" {
				u, err := deps.UserService.GetUserByUid(ctx, uid)
				if err != nil {
					if errors.Is(err, user.ErrUserNotFound) {
						log.Debugf("user not found: %s", uid)
						rest.WriteError(w, http.StatusForbidden, "Unknown user", "")
						return
					}
					log.Errorf("failed to get user: %v", err)
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				log.Tracef("user found: %s", u.Uid)
				ctx = user.WithUser(ctx, u)
			}
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})

	// Everything under /api/ except sign-up and login needs a user
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if requiresUser(req.URL.Path) {
				if _, err := user.CurrentId(req.Context()); err != nil {
					rest.WriteError(w, http.StatusUnauthorized, "Authentication required", "missing "+userIdHeader+" header")
					return
				}
			}
			next.ServeHTTP(w, req)
		})
	})
}

func requiresUser(path string) bool {
	return strings.HasPrefix(path, "/api/") && !strings.HasPrefix(path, "/api/auth/")
}

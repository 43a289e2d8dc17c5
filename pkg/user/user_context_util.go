package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

// UserKey holds the User resolved from the X-User-Id header.
const UserKey contextKey = "user"

var ErrNoUser = errors.New("no user in context")

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

func CurrentUser(ctx context.Context) (User, error) {
	if user, ok := ctx.Value(UserKey).(User); ok {
		return user, nil
	}
	log.Trace("no user attached to request context")
	return User{}, ErrNoUser
}

// CurrentId is the owner id every repository partitions its records by.
func CurrentId(ctx context.Context) (int, error) {
	user, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return user.Id, nil
}

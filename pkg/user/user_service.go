package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/internal/validation"
	log "github.com/sirupsen/logrus"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Registration is the sign-up form of the dashboard.
type Registration struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type Service interface {
	Register(ctx context.Context, registration Registration) (User, error)
	Login(ctx context.Context, email, password string) (User, error)
	GetCurrentUser(ctx context.Context) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
}

type UserServiceImpl struct {
	repo      Repo
	validator *validation.Validator
	eventBus  *event_bus.EventBus
	clock     utils.Clock
}

func NewUserService(repo Repo, validator *validation.Validator, eventBus *event_bus.EventBus, clock utils.Clock) *UserServiceImpl {
	return &UserServiceImpl{repo: repo, validator: validator, eventBus: eventBus, clock: clock}
}

func (u *UserServiceImpl) Register(ctx context.Context, registration Registration) (User, error) {
	registration.Email = strings.ToLower(strings.TrimSpace(registration.Email))
	registration.Name = strings.TrimSpace(registration.Name)
	if err := u.validator.Struct(registration); err != nil {
		return User{}, err
	}

	user := User{
		Uid:       uuid.NewString(),
		Name:      registration.Name,
		Email:     registration.Email,
		CreatedAt: u.clock.Now(),
	}
	if err := user.SetPassword(registration.Password); err != nil {
		return User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = id
	log.Debugf("registered user %d (%s)", user.Id, user.Uid)

	err = u.eventBus.Publish(event_bus.NewEventAt(
		WithUser(ctx, user),
		event_bus.UserRegisteredType,
		event_bus.UserRegistered{UserId: user.Id, Uid: user.Uid, Name: user.Name},
		u.clock.Now(),
	))
	if err != nil {
		// The account exists; subscribers only prepare optional data.
		log.Errorf("failed to publish user registration: %v", err)
	}
	return user, nil
}

func (u *UserServiceImpl) Login(ctx context.Context, email, password string) (User, error) {
	user, err := u.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := user.CheckPassword(password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.GetUser(ctx, userId)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return u.repo.GetAllUsers(ctx)
}

package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/internal/validation"
	"github.com/klokku/creatordash/pkg/user"
	log "github.com/sirupsen/logrus"
)

type AccountInput struct {
	Username string `json:"username" validate:"required,max=255"`
	Country  string `json:"country" validate:"required"`
}

type Service interface {
	ListAccounts(ctx context.Context) ([]Account, error)
	AddAccount(ctx context.Context, input AccountInput) (Account, error)
	DeleteAccount(ctx context.Context, accountId string) error
}

type ServiceImpl struct {
	repo      Repository
	validator *validation.Validator
	eventBus  *event_bus.EventBus
	clock     utils.Clock
}

func NewService(repo Repository, validator *validation.Validator, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, validator: validator, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) ListAccounts(ctx context.Context) ([]Account, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAccounts(ctx, userId)
}

// AddAccount registers an account as pending with no followers yet.
func (s *ServiceImpl) AddAccount(ctx context.Context, input AccountInput) (Account, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Account{}, fmt.Errorf("failed to get current user: %w", err)
	}
	input.Username = NormalizeUsername(input.Username)
	if err := s.validator.Struct(input); err != nil {
		return Account{}, err
	}
	country, err := ParseCountry(input.Country)
	if err != nil {
		return Account{}, err
	}

	account := Account{
		ID:        uuid.NewString(),
		Username:  input.Username,
		Country:   country,
		Followers: "0",
		Status:    Pending,
	}
	if err := s.repo.StoreAccount(ctx, userId, account); err != nil {
		return Account{}, fmt.Errorf("failed to store account: %w", err)
	}

	err = s.eventBus.Publish(event_bus.NewEventAt(ctx, event_bus.AccountAddedType, event_bus.AccountAdded{
		UserId:   userId,
		Id:       account.ID,
		Username: account.Username,
	}, s.clock.Now()))
	if err != nil {
		log.Errorf("failed to publish account addition: %v", err)
	}
	return account, nil
}

func (s *ServiceImpl) DeleteAccount(ctx context.Context, accountId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteAccount(ctx, userId, accountId)
}

package link

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/internal/validation"
	"github.com/klokku/creatordash/pkg/user"
	log "github.com/sirupsen/logrus"
)

type LinkInput struct {
	Title    string `json:"title" validate:"required,max=255"`
	URL      string `json:"url" validate:"required,url,max=2048"`
	Platform string `json:"platform" validate:"omitempty,oneof=YouTube Instagram Facebook TikTok"`
}

type Service interface {
	ListLinks(ctx context.Context) ([]Link, error)
	AddLink(ctx context.Context, input LinkInput) (Link, error)
	DeleteLink(ctx context.Context, linkId string) error
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

func (s *ServiceImpl) ListLinks(ctx context.Context) ([]Link, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetLinks(ctx, userId)
}

func (s *ServiceImpl) AddLink(ctx context.Context, input LinkInput) (Link, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Link{}, fmt.Errorf("failed to get current user: %w", err)
	}
	input.Title = strings.TrimSpace(input.Title)
	input.URL = strings.TrimSpace(input.URL)
	if err := s.validator.Struct(input); err != nil {
		return Link{}, err
	}
	platform, err := ParsePlatform(input.Platform)
	if err != nil {
		return Link{}, err
	}

	link := Link{
		ID:        uuid.NewString(),
		URL:       input.URL,
		Platform:  platform,
		Title:     input.Title,
		DateAdded: utils.Today(s.clock),
	}
	if err := s.repo.StoreLink(ctx, userId, link); err != nil {
		return Link{}, fmt.Errorf("failed to store link: %w", err)
	}

	err = s.eventBus.Publish(event_bus.NewEventAt(ctx, event_bus.LinkCreatedType, event_bus.LinkCreated{
		UserId:   userId,
		Id:       link.ID,
		Title:    link.Title,
		Platform: string(link.Platform),
	}, s.clock.Now()))
	if err != nil {
		log.Errorf("failed to publish link creation: %v", err)
	}
	return link, nil
}

func (s *ServiceImpl) DeleteLink(ctx context.Context, linkId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteLink(ctx, userId, linkId)
}

package background

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/pkg/media"
	"github.com/klokku/creatordash/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	ListBackgrounds(ctx context.Context) ([]Background, error)
	Upload(ctx context.Context, uploads []media.Upload) ([]Background, error)
	DeleteBackground(ctx context.Context, backgroundId string) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) ListBackgrounds(ctx context.Context) ([]Background, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetBackgrounds(ctx, userId)
}

func (s *ServiceImpl) Upload(ctx context.Context, uploads []media.Upload) ([]Background, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	today := utils.Today(s.clock)
	backgrounds := make([]Background, 0, len(uploads))
	for _, u := range uploads {
		backgrounds = append(backgrounds, Background{
			ID:         uuid.NewString(),
			Name:       u.Name,
			URL:        NewImageURL,
			Size:       media.FormatSize(u.Size),
			UploadDate: today,
		})
	}
	if err := s.repo.StoreBackgrounds(ctx, userId, backgrounds); err != nil {
		return nil, fmt.Errorf("failed to store backgrounds: %w", err)
	}

	for _, b := range backgrounds {
		err := s.eventBus.Publish(event_bus.NewEventAt(ctx, event_bus.BackgroundUploadedType, event_bus.BackgroundUploaded{
			UserId: userId,
			Id:     b.ID,
			Name:   b.Name,
		}, s.clock.Now()))
		if err != nil {
			log.Errorf("failed to publish background upload: %v", err)
		}
	}
	return backgrounds, nil
}

func (s *ServiceImpl) DeleteBackground(ctx context.Context, backgroundId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteBackground(ctx, userId, backgroundId)
}

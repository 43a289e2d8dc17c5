package video

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
	ListVideos(ctx context.Context) ([]Video, error)
	Upload(ctx context.Context, uploads []media.Upload) ([]Video, error)
	DeleteVideo(ctx context.Context, videoId string) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) ListVideos(ctx context.Context) ([]Video, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetVideos(ctx, userId)
}

// Upload records one video per uploaded file. The returned slice is in upload
// order; listing shows the last uploaded file first.
func (s *ServiceImpl) Upload(ctx context.Context, uploads []media.Upload) ([]Video, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	today := utils.Today(s.clock)
	videos := make([]Video, 0, len(uploads))
	for _, u := range uploads {
		videos = append(videos, Video{
			ID:         uuid.NewString(),
			Title:      u.Name,
			Duration:   NewDuration,
			UploadDate: today,
			Thumbnail:  NewThumbnail,
			Size:       media.FormatSize(u.Size),
		})
	}
	if err := s.repo.StoreVideos(ctx, userId, videos); err != nil {
		return nil, fmt.Errorf("failed to store videos: %w", err)
	}

	for _, v := range videos {
		err := s.eventBus.Publish(event_bus.NewEventAt(ctx, event_bus.VideoUploadedType, event_bus.VideoUploaded{
			UserId: userId,
			Id:     v.ID,
			Title:  v.Title,
		}, s.clock.Now()))
		if err != nil {
			log.Errorf("failed to publish video upload: %v", err)
		}
	}
	return videos, nil
}

func (s *ServiceImpl) DeleteVideo(ctx context.Context, videoId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteVideo(ctx, userId, videoId)
}

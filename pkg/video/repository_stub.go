package video

import (
	"context"

	"github.com/klokku/creatordash/internal/store"
)

type RepositoryStub struct {
	videos *store.Partitioned[Video]
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{videos: store.NewPartitioned(func(v Video) string { return v.ID })}
}

func (r *RepositoryStub) StoreVideos(ctx context.Context, userId int, videos []Video) error {
	c := r.videos.For(userId)
	for _, v := range videos {
		c.Add(v)
	}
	return nil
}

func (r *RepositoryStub) GetVideos(ctx context.Context, userId int) ([]Video, error) {
	return r.videos.For(userId).Snapshot(), nil
}

func (r *RepositoryStub) DeleteVideo(ctx context.Context, userId int, videoId string) error {
	if !r.videos.For(userId).Remove(videoId) {
		return ErrVideoNotFound
	}
	return nil
}

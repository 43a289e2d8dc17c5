package background

import (
	"context"

	"github.com/klokku/creatordash/internal/store"
)

type RepositoryStub struct {
	backgrounds *store.Partitioned[Background]
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{backgrounds: store.NewPartitioned(func(b Background) string { return b.ID })}
}

func (r *RepositoryStub) StoreBackgrounds(ctx context.Context, userId int, backgrounds []Background) error {
	c := r.backgrounds.For(userId)
	for _, b := range backgrounds {
		c.Add(b)
	}
	return nil
}

func (r *RepositoryStub) GetBackgrounds(ctx context.Context, userId int) ([]Background, error) {
	return r.backgrounds.For(userId).Snapshot(), nil
}

func (r *RepositoryStub) DeleteBackground(ctx context.Context, userId int, backgroundId string) error {
	if !r.backgrounds.For(userId).Remove(backgroundId) {
		return ErrBackgroundNotFound
	}
	return nil
}

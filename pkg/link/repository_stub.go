package link

import (
	"context"

	"github.com/klokku/creatordash/internal/store"
)

type RepositoryStub struct {
	links *store.Partitioned[Link]
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{links: store.NewPartitioned(func(l Link) string { return l.ID })}
}

func (r *RepositoryStub) StoreLink(ctx context.Context, userId int, link Link) error {
	r.links.For(userId).Add(link)
	return nil
}

func (r *RepositoryStub) GetLinks(ctx context.Context, userId int) ([]Link, error) {
	return r.links.For(userId).Snapshot(), nil
}

func (r *RepositoryStub) DeleteLink(ctx context.Context, userId int, linkId string) error {
	if !r.links.For(userId).Remove(linkId) {
		return ErrLinkNotFound
	}
	return nil
}

package account

import (
	"context"

	"github.com/klokku/creatordash/internal/store"
)

type RepositoryStub struct {
	accounts *store.Partitioned[Account]
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{accounts: store.NewPartitioned(func(a Account) string { return a.ID })}
}

func (r *RepositoryStub) StoreAccount(ctx context.Context, userId int, account Account) error {
	r.accounts.For(userId).Add(account)
	return nil
}

func (r *RepositoryStub) GetAccounts(ctx context.Context, userId int) ([]Account, error) {
	return r.accounts.For(userId).Snapshot(), nil
}

func (r *RepositoryStub) DeleteAccount(ctx context.Context, userId int, accountId string) error {
	if !r.accounts.For(userId).Remove(accountId) {
		return ErrAccountNotFound
	}
	return nil
}

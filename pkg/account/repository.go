package account

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreAccount(ctx context.Context, userId int, account Account) error
	// GetAccounts returns the accounts newest first.
	GetAccounts(ctx context.Context, userId int) ([]Account, error)
	DeleteAccount(ctx context.Context, userId int, accountId string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreAccount(ctx context.Context, userId int, account Account) error {
	query := `INSERT INTO account (id, user_id, username, country, followers, status) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, account.ID, userId, account.Username, string(account.Country), account.Followers, string(account.Status))
	if err != nil {
		err := fmt.Errorf("could not store account: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetAccounts(ctx context.Context, userId int) ([]Account, error) {
	rows, err := r.db.Query(ctx, `SELECT id, username, country, followers, status FROM account WHERE user_id = $1 ORDER BY seq DESC`, userId)
	if err != nil {
		err := fmt.Errorf("could not query accounts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	accounts := make([]Account, 0, 10)
	for rows.Next() {
		var a Account
		var country, status string
		if err := rows.Scan(&a.ID, &a.Username, &country, &a.Followers, &status); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		if a.Country, err = ParseCountry(country); err != nil {
			log.Warnf("skipping account %s: %v", a.ID, err)
			continue
		}
		if a.Status, err = ParseStatus(status); err != nil {
			log.Warnf("skipping account %s: %v", a.ID, err)
			continue
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *RepositoryImpl) DeleteAccount(ctx context.Context, userId int, accountId string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM account WHERE id = $1 AND user_id = $2`, accountId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete account: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}

package link

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreLink(ctx context.Context, userId int, link Link) error
	// GetLinks returns the links newest first.
	GetLinks(ctx context.Context, userId int) ([]Link, error)
	DeleteLink(ctx context.Context, userId int, linkId string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreLink(ctx context.Context, userId int, link Link) error {
	query := `INSERT INTO link (id, user_id, url, platform, title, date_added) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, link.ID, userId, link.URL, string(link.Platform), link.Title, link.DateAdded)
	if err != nil {
		err := fmt.Errorf("could not store link: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetLinks(ctx context.Context, userId int) ([]Link, error) {
	rows, err := r.db.Query(ctx, `SELECT id, url, platform, title, date_added FROM link WHERE user_id = $1 ORDER BY seq DESC`, userId)
	if err != nil {
		err := fmt.Errorf("could not query links: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	links := make([]Link, 0, 10)
	for rows.Next() {
		var l Link
		var platform string
		if err := rows.Scan(&l.ID, &l.URL, &platform, &l.Title, &l.DateAdded); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		if l.Platform, err = ParsePlatform(platform); err != nil {
			log.Warnf("skipping link %s: %v", l.ID, err)
			continue
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *RepositoryImpl) DeleteLink(ctx context.Context, userId int, linkId string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM link WHERE id = $1 AND user_id = $2`, linkId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete link: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLinkNotFound
	}
	return nil
}

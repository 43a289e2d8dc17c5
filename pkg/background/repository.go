package background

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreBackgrounds(ctx context.Context, userId int, backgrounds []Background) error
	// GetBackgrounds returns the backgrounds newest first.
	GetBackgrounds(ctx context.Context, userId int) ([]Background, error)
	DeleteBackground(ctx context.Context, userId int, backgroundId string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreBackgrounds(ctx context.Context, userId int, backgrounds []Background) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO background (id, user_id, name, url, size, upload_date) VALUES ($1, $2, $3, $4, $5, $6)`
	batch := &pgx.Batch{}
	for _, b := range backgrounds {
		batch.Queue(query, b.ID, userId, b.Name, b.URL, b.Size, b.UploadDate)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		err := fmt.Errorf("could not store backgrounds: %w", err)
		log.Error(err)
		return err
	}
	return tx.Commit(ctx)
}

func (r *RepositoryImpl) GetBackgrounds(ctx context.Context, userId int) ([]Background, error) {
	query := `SELECT id, name, url, size, upload_date FROM background WHERE user_id = $1 ORDER BY seq DESC`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query backgrounds: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	backgrounds := make([]Background, 0, 10)
	for rows.Next() {
		var b Background
		if err := rows.Scan(&b.ID, &b.Name, &b.URL, &b.Size, &b.UploadDate); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		backgrounds = append(backgrounds, b)
	}
	return backgrounds, rows.Err()
}

func (r *RepositoryImpl) DeleteBackground(ctx context.Context, userId int, backgroundId string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM background WHERE id = $1 AND user_id = $2`, backgroundId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete background: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBackgroundNotFound
	}
	return nil
}

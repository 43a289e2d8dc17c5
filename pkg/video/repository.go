package video

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreVideos(ctx context.Context, userId int, videos []Video) error
	// GetVideos returns the videos newest first.
	GetVideos(ctx context.Context, userId int) ([]Video, error)
	DeleteVideo(ctx context.Context, userId int, videoId string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreVideos(ctx context.Context, userId int, videos []Video) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO video (id, user_id, title, duration, upload_date, thumbnail, size) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	batch := &pgx.Batch{}
	for _, v := range videos {
		batch.Queue(query, v.ID, userId, v.Title, v.Duration, v.UploadDate, v.Thumbnail, v.Size)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		err := fmt.Errorf("could not store videos: %w", err)
		log.Error(err)
		return err
	}
	return tx.Commit(ctx)
}

func (r *RepositoryImpl) GetVideos(ctx context.Context, userId int) ([]Video, error) {
	query := `SELECT id, title, duration, upload_date, thumbnail, size FROM video WHERE user_id = $1 ORDER BY seq DESC`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query videos: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	videos := make([]Video, 0, 10)
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Duration, &v.UploadDate, &v.Thumbnail, &v.Size); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

func (r *RepositoryImpl) DeleteVideo(ctx context.Context, userId int, videoId string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM video WHERE id = $1 AND user_id = $2`, videoId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete video: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVideoNotFound
	}
	return nil
}

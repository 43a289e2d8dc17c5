package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreNote(ctx context.Context, userId int, note Note) error
	GetNote(ctx context.Context, userId int, noteId string) (Note, error)
	// GetNotes returns the notes newest first.
	GetNotes(ctx context.Context, userId int) ([]Note, error)
	UpdateNote(ctx context.Context, userId int, note Note) (Note, error)
	DeleteNote(ctx context.Context, userId int, noteId string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreNote(ctx context.Context, userId int, note Note) error {
	query := `INSERT INTO note (id, user_id, title, content, date_created, date_modified) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, note.ID, userId, note.Title, note.Content, note.DateCreated, note.DateModified)
	if err != nil {
		err := fmt.Errorf("could not store note: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetNote(ctx context.Context, userId int, noteId string) (Note, error) {
	query := `SELECT id, title, content, date_created, date_modified FROM note WHERE id = $1 AND user_id = $2`
	var n Note
	err := r.db.QueryRow(ctx, query, noteId, userId).Scan(&n.ID, &n.Title, &n.Content, &n.DateCreated, &n.DateModified)
	if errors.Is(err, pgx.ErrNoRows) {
		return Note{}, ErrNoteNotFound
	} else if err != nil {
		err := fmt.Errorf("could not get note: %w", err)
		log.Error(err)
		return Note{}, err
	}
	return n, nil
}

func (r *RepositoryImpl) GetNotes(ctx context.Context, userId int) ([]Note, error) {
	query := `SELECT id, title, content, date_created, date_modified FROM note WHERE user_id = $1 ORDER BY seq DESC`
	rows, err := r.db.Query(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query notes: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	notes := make([]Note, 0, 10)
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.DateCreated, &n.DateModified); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *RepositoryImpl) UpdateNote(ctx context.Context, userId int, note Note) (Note, error) {
	query := `UPDATE note SET title = $1, content = $2, date_modified = $3 WHERE id = $4 AND user_id = $5`
	tag, err := r.db.Exec(ctx, query, note.Title, note.Content, note.DateModified, note.ID, userId)
	if err != nil {
		err := fmt.Errorf("could not update note: %w", err)
		log.Error(err)
		return Note{}, err
	}
	if tag.RowsAffected() == 0 {
		return Note{}, ErrNoteNotFound
	}
	return note, nil
}

func (r *RepositoryImpl) DeleteNote(ctx context.Context, userId int, noteId string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM note WHERE id = $1 AND user_id = $2`, noteId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete note: %w", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoteNotFound
	}
	return nil
}

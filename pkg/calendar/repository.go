package calendar

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	StoreEvents(ctx context.Context, userId int, events []Event) error
	GetEvents(ctx context.Context, userId int) ([]Event, error)
	// GetEventsBetween returns events with from <= date <= to (date keys).
	GetEventsBetween(ctx context.Context, userId int, from, to string) ([]Event, error)
	UpdateEvent(ctx context.Context, userId int, event Event) (Event, error)
	DeleteEvent(ctx context.Context, userId int, eventId string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) StoreEvents(ctx context.Context, userId int, events []Event) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO calendar_event (id, user_id, title, event_date, event_time, category) VALUES ($1, $2, $3, $4, $5, $6)`
	batch := &pgx.Batch{}
	for _, e := range events {
		batch.Queue(query, e.ID, userId, e.Title, e.Date, e.Time, string(e.Category))
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		err := fmt.Errorf("could not store events: %w", err)
		log.Error(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetEvents(ctx context.Context, userId int) ([]Event, error) {
	query := `SELECT id, title, event_date, event_time, category
			  FROM calendar_event
			  WHERE user_id = $1
			  ORDER BY event_date, event_time, created_at`
	return r.query(ctx, query, userId)
}

func (r *RepositoryImpl) GetEventsBetween(ctx context.Context, userId int, from, to string) ([]Event, error) {
	query := `SELECT id, title, event_date, event_time, category
			  FROM calendar_event
			  WHERE user_id = $1 AND event_date >= $2 AND event_date <= $3
			  ORDER BY event_date, event_time, created_at`
	return r.query(ctx, query, userId, from, to)
}

func (r *RepositoryImpl) query(ctx context.Context, query string, args ...any) ([]Event, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query calendar events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		var e Event
		var category string
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.Time, &category); err != nil {
			err := fmt.Errorf("could not scan row: %w", err)
			log.Error(err)
			return nil, err
		}
		e.Category, err = ParseCategory(category)
		if err != nil {
			log.Warnf("skipping event %s: %v", e.ID, err)
			continue
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *RepositoryImpl) UpdateEvent(ctx context.Context, userId int, event Event) (Event, error) {
	query := `UPDATE calendar_event SET title = $1, event_date = $2, event_time = $3, category = $4 WHERE id = $5 AND user_id = $6`
	tag, err := r.db.Exec(ctx, query, event.Title, event.Date, event.Time, string(event.Category), event.ID, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Event{}, err
	}
	if tag.RowsAffected() == 0 {
		return Event{}, ErrEventNotFound
	}
	return event, nil
}

func (r *RepositoryImpl) DeleteEvent(ctx context.Context, userId int, eventId string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM calendar_event WHERE id = $1 AND user_id = $2`, eventId, userId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEventNotFound
	}
	return nil
}

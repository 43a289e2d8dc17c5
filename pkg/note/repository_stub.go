package note

import (
	"context"

	"github.com/klokku/creatordash/internal/store"
)

type RepositoryStub struct {
	notes *store.Partitioned[Note]
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{notes: store.NewPartitioned(func(n Note) string { return n.ID })}
}

func (r *RepositoryStub) StoreNote(ctx context.Context, userId int, note Note) error {
	r.notes.For(userId).Add(note)
	return nil
}

func (r *RepositoryStub) GetNote(ctx context.Context, userId int, noteId string) (Note, error) {
	n, ok := r.notes.For(userId).Find(noteId)
	if !ok {
		return Note{}, ErrNoteNotFound
	}
	return n, nil
}

func (r *RepositoryStub) GetNotes(ctx context.Context, userId int) ([]Note, error) {
	return r.notes.For(userId).Snapshot(), nil
}

func (r *RepositoryStub) UpdateNote(ctx context.Context, userId int, note Note) (Note, error) {
	updated, ok := r.notes.For(userId).Update(note.ID, func(Note) Note { return note })
	if !ok {
		return Note{}, ErrNoteNotFound
	}
	return updated, nil
}

func (r *RepositoryStub) DeleteNote(ctx context.Context, userId int, noteId string) error {
	if !r.notes.For(userId).Remove(noteId) {
		return ErrNoteNotFound
	}
	return nil
}

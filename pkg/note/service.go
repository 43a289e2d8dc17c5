package note

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/internal/validation"
	"github.com/klokku/creatordash/pkg/user"
	log "github.com/sirupsen/logrus"
)

type NoteInput struct {
	Title   string `json:"title" validate:"max=255"`
	Content string `json:"content"`
}

type Service interface {
	ListNotes(ctx context.Context) ([]Note, error)
	CreateNote(ctx context.Context, input NoteInput) (Note, error)
	SaveNote(ctx context.Context, noteId string, input NoteInput) (Note, error)
	DeleteNote(ctx context.Context, noteId string) error
}

type ServiceImpl struct {
	repo      Repository
	validator *validation.Validator
	eventBus  *event_bus.EventBus
	clock     utils.Clock
}

func NewService(repo Repository, validator *validation.Validator, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, validator: validator, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) ListNotes(ctx context.Context) ([]Note, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetNotes(ctx, userId)
}

// CreateNote stores a new note. A blank title becomes DefaultTitle.
func (s *ServiceImpl) CreateNote(ctx context.Context, input NoteInput) (Note, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Note{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.validator.Struct(input); err != nil {
		return Note{}, err
	}

	today := utils.Today(s.clock)
	note := Note{
		ID:           uuid.NewString(),
		Title:        titleOrDefault(input.Title),
		Content:      input.Content,
		DateCreated:  today,
		DateModified: today,
	}
	if err := s.repo.StoreNote(ctx, userId, note); err != nil {
		return Note{}, fmt.Errorf("failed to store note: %w", err)
	}

	err = s.eventBus.Publish(event_bus.NewEventAt(ctx, event_bus.NoteCreatedType, event_bus.NoteCreated{
		UserId: userId,
		Id:     note.ID,
		Title:  note.Title,
	}, s.clock.Now()))
	if err != nil {
		log.Errorf("failed to publish note creation: %v", err)
	}
	return note, nil
}

// SaveNote replaces title and content of an existing note and bumps its
// modification date.
func (s *ServiceImpl) SaveNote(ctx context.Context, noteId string, input NoteInput) (Note, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Note{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := s.validator.Struct(input); err != nil {
		return Note{}, err
	}

	existing, err := s.repo.GetNote(ctx, userId, noteId)
	if err != nil {
		return Note{}, err
	}
	existing.Title = titleOrDefault(input.Title)
	existing.Content = input.Content
	existing.DateModified = utils.Today(s.clock)
	return s.repo.UpdateNote(ctx, userId, existing)
}

func (s *ServiceImpl) DeleteNote(ctx context.Context, noteId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteNote(ctx, userId, noteId)
}

func titleOrDefault(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultTitle
	}
	return title
}

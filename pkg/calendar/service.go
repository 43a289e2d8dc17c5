package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/internal/validation"
	"github.com/klokku/creatordash/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidDate = errors.New("invalid date")

// EventInput is the user-editable part of an Event.
type EventInput struct {
	Title    string `json:"title" validate:"required,max=255"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	Category string `json:"type" validate:"required,oneof=meeting task reminder"`
}

// Settings are the calendar options the service needs from configuration.
type Settings struct {
	Location           *time.Location
	ImportWindowMonths int
	MaxOccurrences     int
}

type Service struct {
	repo      Repository
	views     *ViewStore
	validator *validation.Validator
	eventBus  *event_bus.EventBus
	clock     utils.Clock
	loc       *time.Location
	settings  Settings
}

func NewService(repo Repository, validator *validation.Validator, eventBus *event_bus.EventBus, clock utils.Clock, settings Settings) *Service {
	loc := settings.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:      repo,
		views:     NewViewStore(func() time.Time { return clock.Now().In(loc) }),
		validator: validator,
		eventBus:  eventBus,
		clock:     clock,
		loc:       loc,
		settings:  settings,
	}
}

func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) ListEvents(ctx context.Context) ([]Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetEvents(ctx, userId)
}

// EventsOnDate returns the user's events on the given date key.
func (s *Service) EventsOnDate(ctx context.Context, date string) ([]Event, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return EventsOnDate(events, date), nil
}

func (s *Service) AddEvent(ctx context.Context, input EventInput) (Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}
	event, err := s.fromInput(uuid.NewString(), input)
	if err != nil {
		return Event{}, err
	}
	if err := s.repo.StoreEvents(ctx, userId, []Event{event}); err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}

	err = s.eventBus.Publish(event_bus.NewEventAt(ctx, event_bus.CalendarEventCreatedType, event_bus.CalendarEventCreated{
		UserId: userId,
		Id:     event.ID,
		Title:  event.Title,
		Date:   event.Date,
	}, s.clock.Now()))
	if err != nil {
		log.Errorf("failed to publish calendar event creation: %v", err)
	}
	return event, nil
}

// AddEvents stores already built events, e.g. from an import. Each event gets
// a fresh id.
func (s *Service) AddEvents(ctx context.Context, events []Event) ([]Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	stored := make([]Event, 0, len(events))
	for _, e := range events {
		e.ID = uuid.NewString()
		stored = append(stored, e)
	}
	if len(stored) == 0 {
		return stored, nil
	}
	if err := s.repo.StoreEvents(ctx, userId, stored); err != nil {
		return nil, fmt.Errorf("failed to store events: %w", err)
	}
	return stored, nil
}

func (s *Service) UpdateEvent(ctx context.Context, eventId string, input EventInput) (Event, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Event{}, fmt.Errorf("failed to get current user: %w", err)
	}
	event, err := s.fromInput(eventId, input)
	if err != nil {
		return Event{}, err
	}
	return s.repo.UpdateEvent(ctx, userId, event)
}

func (s *Service) DeleteEvent(ctx context.Context, eventId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.DeleteEvent(ctx, userId, eventId)
}

func (s *Service) ExportICS(ctx context.Context) (string, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return "", err
	}
	return RenderICS(events, s.loc, s.clock.Now())
}

func (s *Service) ExportCSV(ctx context.Context) (string, error) {
	events, err := s.ListEvents(ctx)
	if err != nil {
		return "", err
	}
	return RenderCSV(events)
}

// Import stores the events of an iCalendar document and returns them.
func (s *Service) Import(ctx context.Context, r io.Reader) ([]Event, error) {
	window := NewImportWindow(s.clock.Now().In(s.loc), s.settings.ImportWindowMonths, s.settings.MaxOccurrences)
	events, err := ParseICS(r, s.loc, window)
	if err != nil {
		return nil, err
	}
	log.Debugf("importing %d calendar events", len(events))
	return s.AddEvents(ctx, events)
}

// Grid lays out an explicit month, highlighting the user's selection.
func (s *Service) Grid(ctx context.Context, month DisplayedMonth) (Grid, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Grid{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.grid(ctx, userId, month, s.views.Get(userId).Selected)
}

func (s *Service) View(ctx context.Context) (View, Grid, error) {
	return s.applyView(ctx, func(v View) View { return v })
}

func (s *Service) NextMonth(ctx context.Context) (View, Grid, error) {
	return s.applyView(ctx, View.Next)
}

func (s *Service) PreviousMonth(ctx context.Context) (View, Grid, error) {
	return s.applyView(ctx, View.Previous)
}

func (s *Service) SelectDate(ctx context.Context, date string) (View, Grid, error) {
	if _, _, _, err := ParseDate(date); err != nil {
		return View{}, Grid{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return s.applyView(ctx, func(v View) View { return v.Select(date) })
}

func (s *Service) applyView(ctx context.Context, fn func(View) View) (View, Grid, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return View{}, Grid{}, fmt.Errorf("failed to get current user: %w", err)
	}
	view := s.views.Apply(userId, fn)
	grid, err := s.grid(ctx, userId, view.Displayed, view.Selected)
	if err != nil {
		return View{}, Grid{}, err
	}
	return view, grid, nil
}

func (s *Service) grid(ctx context.Context, userId int, month DisplayedMonth, selected string) (Grid, error) {
	from := FormatDate(month.Year, month.Month, 1)
	to := FormatDate(month.Year, month.Month, DaysInMonth(month.Year, month.Month))
	events, err := s.repo.GetEventsBetween(ctx, userId, from, to)
	if err != nil {
		return Grid{}, fmt.Errorf("failed to get events: %w", err)
	}
	today := s.clock.Now().In(s.loc).Format(DateLayout)
	return BuildGrid(month, events, today, selected), nil
}

func (s *Service) fromInput(id string, input EventInput) (Event, error) {
	if err := s.validator.Struct(input); err != nil {
		return Event{}, err
	}
	category, err := ParseCategory(input.Category)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:       id,
		Title:    input.Title,
		Date:     input.Date,
		Time:     input.Time,
		Category: category,
	}, nil
}

// Package seed fills the panels of newly registered users with sample data.
package seed

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/pkg/account"
	"github.com/klokku/creatordash/pkg/background"
	"github.com/klokku/creatordash/pkg/calendar"
	"github.com/klokku/creatordash/pkg/link"
	"github.com/klokku/creatordash/pkg/note"
	"github.com/klokku/creatordash/pkg/video"
	log "github.com/sirupsen/logrus"
)

type Repositories struct {
	Videos      video.Repository
	Backgrounds background.Repository
	Accounts    account.Repository
	Links       link.Repository
	Notes       note.Repository
	Calendar    calendar.Repository
}

type Seeder struct {
	repos Repositories
}

func NewSeeder(repos Repositories) *Seeder {
	return &Seeder{repos: repos}
}

// Subscribe seeds every user announced by a user.registered event.
func (s *Seeder) Subscribe(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.UserRegisteredType, func(e event_bus.EventT[event_bus.UserRegistered]) error {
		log.Debugf("seeding panels of user %d", e.Data.UserId)
		if err := s.Seed(e.Context(), e.Data.UserId); err != nil {
			log.Errorf("failed to seed user %d: %v", e.Data.UserId, err)
			return err
		}
		return nil
	})
}

// Seed stores the sample records for userId. Repositories list the last
// stored record first, so every list is stored oldest first.
func (s *Seeder) Seed(ctx context.Context, userId int) error {
	vs := reversed(videos)
	for i := range vs {
		vs[i].ID = uuid.NewString()
	}
	if err := s.repos.Videos.StoreVideos(ctx, userId, vs); err != nil {
		return fmt.Errorf("failed to seed videos: %w", err)
	}

	bs := reversed(backgrounds)
	for i := range bs {
		bs[i].ID = uuid.NewString()
	}
	if err := s.repos.Backgrounds.StoreBackgrounds(ctx, userId, bs); err != nil {
		return fmt.Errorf("failed to seed backgrounds: %w", err)
	}

	for _, a := range reversed(accounts) {
		a.ID = uuid.NewString()
		if err := s.repos.Accounts.StoreAccount(ctx, userId, a); err != nil {
			return fmt.Errorf("failed to seed accounts: %w", err)
		}
	}
	for _, l := range reversed(links) {
		l.ID = uuid.NewString()
		if err := s.repos.Links.StoreLink(ctx, userId, l); err != nil {
			return fmt.Errorf("failed to seed links: %w", err)
		}
	}
	for _, n := range reversed(notes) {
		n.ID = uuid.NewString()
		if err := s.repos.Notes.StoreNote(ctx, userId, n); err != nil {
			return fmt.Errorf("failed to seed notes: %w", err)
		}
	}

	es := slices.Clone(events)
	for i := range es {
		es[i].ID = uuid.NewString()
	}
	if err := s.repos.Calendar.StoreEvents(ctx, userId, es); err != nil {
		return fmt.Errorf("failed to seed calendar events: %w", err)
	}
	return nil
}

func reversed[T any](items []T) []T {
	out := slices.Clone(items)
	slices.Reverse(out)
	return out
}

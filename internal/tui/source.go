package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/pkg/calendar"
)

// Source provides the events shown in the month view.
type Source interface {
	Load(ctx context.Context) ([]calendar.Event, error)
}

// FileSource reads events from a JSON array of events or an iCalendar file,
// chosen by extension.
type FileSource struct {
	Path     string
	Location *time.Location
	Clock    utils.Clock
}

func (s FileSource) Load(ctx context.Context) ([]calendar.Event, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", s.Path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".ics", ".ical":
		window := calendar.NewImportWindow(s.Clock.Now(), 12, 500)
		events, err := calendar.ParseICS(f, s.Location, window)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", s.Path, err)
		}
		return events, nil
	default:
		events := make([]calendar.Event, 0)
		if err := json.NewDecoder(f).Decode(&events); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", s.Path, err)
		}
		for i := range events {
			if _, err := calendar.ParseCategory(string(events[i].Category)); err != nil {
				events[i].Category = calendar.Reminder
			}
		}
		return events, nil
	}
}

// ServerSource reads the events of one user from a running dashboard.
type ServerSource struct {
	BaseURL string
	Uid     string
	Client  *http.Client
}

func (s ServerSource) Load(ctx context.Context) ([]calendar.Event, error) {
	url := strings.TrimRight(s.BaseURL, "/") + "/api/calendar/event"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-User-Id", s.Uid)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch events: %s", resp.Status)
	}

	events := make([]calendar.Event, 0)
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

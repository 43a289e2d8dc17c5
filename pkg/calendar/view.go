package calendar

import (
	"sync"
	"time"
)

// View is the navigation state of one calendar screen.
type View struct {
	Displayed DisplayedMonth `json:"displayed"`
	// Selected is empty when no day has been selected yet.
	Selected string `json:"selected,omitempty"`
}

// NewView starts at the month of now with nothing selected.
func NewView(now time.Time) View {
	return View{Displayed: MonthOf(now)}
}

func (v View) Next() View {
	v.Displayed = AdvanceMonth(v.Displayed, 1)
	return v
}

func (v View) Previous() View {
	v.Displayed = AdvanceMonth(v.Displayed, -1)
	return v
}

// Select always sets the selection; selecting the selected date keeps it.
func (v View) Select(date string) View {
	v.Selected = date
	return v
}

// ViewStore keeps one View per user. Views are UI state and live only in
// memory.
type ViewStore struct {
	mu    sync.Mutex
	views map[int]View
	now   func() time.Time
}

func NewViewStore(now func() time.Time) *ViewStore {
	return &ViewStore{views: make(map[int]View), now: now}
}

func (s *ViewStore) Get(userId int) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[userId]
	if !ok {
		v = NewView(s.now())
		s.views[userId] = v
	}
	return v
}

// Apply replaces the user's view with fn(view) and returns the new value.
func (s *ViewStore) Apply(userId int, fn func(View) View) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[userId]
	if !ok {
		v = NewView(s.now())
	}
	v = fn(v)
	s.views[userId] = v
	return v
}

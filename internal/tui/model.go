// Package tui is a terminal month view of the dashboard calendar.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/pkg/calendar"
)

const loadTimeout = 10 * time.Second

// EventsLoadedMsg carries the result of reading the Source.
type EventsLoadedMsg struct {
	Events []calendar.Event
	Err    error
}

// ReloadMsg asks the model to read the Source again.
type ReloadMsg struct{}

type Model struct {
	source Source
	clock  utils.Clock
	styles Styles

	view   calendar.View
	cursor int
	events []calendar.Event
	err    error
	width  int
}

func NewModel(source Source, clock utils.Clock) *Model {
	now := clock.Now()
	return &Model{
		source: source,
		clock:  clock,
		styles: DefaultStyles(),
		view:   calendar.NewView(now),
		cursor: now.Day(),
		events: []calendar.Event{},
	}
}

func (m *Model) Init() tea.Cmd {
	return m.load()
}

func (m *Model) load() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		events, err := source.Load(ctx)
		return EventsLoadedMsg{Events: events, Err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case EventsLoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.events = msg.Events
		}
		return m, nil

	case ReloadMsg:
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "h", "left":
		m.changeMonth(-1)
	case "l", "right":
		m.changeMonth(1)
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "enter":
		m.view = m.view.Select(m.cursorDate())
	case "t":
		now := m.clock.Now()
		m.view.Displayed = calendar.MonthOf(now)
		m.cursor = now.Day()
	case "r":
		return m, m.load()
	}
	return m, nil
}

// changeMonth keeps the cursor on the same day number, clamped to the length
// of the new month.
func (m *Model) changeMonth(delta int) {
	if delta > 0 {
		m.view = m.view.Next()
	} else {
		m.view = m.view.Previous()
	}
	days := calendar.DaysInMonth(m.view.Displayed.Year, m.view.Displayed.Month)
	m.cursor = min(m.cursor, days)
}

// moveCursor moves by days and follows into the adjacent month.
func (m *Model) moveCursor(delta int) {
	d := m.view.Displayed
	target := time.Date(d.Year, time.Month(d.Month+1), m.cursor+delta, 0, 0, 0, 0, time.UTC)
	m.view.Displayed = calendar.MonthOf(target)
	m.cursor = target.Day()
}

func (m *Model) cursorDate() string {
	return calendar.FormatDate(m.view.Displayed.Year, m.view.Displayed.Month, m.cursor)
}

func (m *Model) today() string {
	return utils.Today(m.clock)
}

// agendaDate is the day whose events are listed under the grid: the
// selection when there is one, else the cursor.
func (m *Model) agendaDate() string {
	if m.view.Selected != "" {
		return m.view.Selected
	}
	return m.cursorDate()
}

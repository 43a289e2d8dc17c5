package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/pkg/calendar"
	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	events []calendar.Event
	err    error
}

func (s staticSource) Load(ctx context.Context) ([]calendar.Event, error) {
	return s.events, s.err
}

var testEvents = []calendar.Event{
	{ID: "1", Title: "Team Meeting", Date: "2025-10-26", Time: "10:00", Category: calendar.Meeting},
	{ID: "2", Title: "Project Deadline", Date: "2025-10-28", Time: "17:00", Category: calendar.Task},
}

func setupModel(t *testing.T) (*Model, *utils.MockClock) {
	t.Helper()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.October, 15, 9, 0, 0, 0, time.UTC)}
	m := NewModel(staticSource{events: testEvents}, clock)
	msg := m.Init()()
	m.Update(msg)
	return m, clock
}

func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Init(t *testing.T) {
	m, _ := setupModel(t)

	assert.Equal(t, calendar.DisplayedMonth{Year: 2025, Month: 9}, m.view.Displayed)
	assert.Equal(t, 15, m.cursor)
	assert.Equal(t, testEvents, m.events)
	assert.Empty(t, m.view.Selected)
}

func TestModel_MonthNavigation(t *testing.T) {
	t.Run("l and right advance, h and left go back", func(t *testing.T) {
		m, _ := setupModel(t)

		press(m, runes("l"), tea.KeyMsg{Type: tea.KeyRight})
		assert.Equal(t, calendar.DisplayedMonth{Year: 2025, Month: 11}, m.view.Displayed)

		press(m, runes("l"))
		assert.Equal(t, calendar.DisplayedMonth{Year: 2026, Month: 0}, m.view.Displayed)

		press(m, runes("h"), tea.KeyMsg{Type: tea.KeyLeft})
		assert.Equal(t, calendar.DisplayedMonth{Year: 2025, Month: 10}, m.view.Displayed)
	})

	t.Run("cursor is clamped to the length of the month", func(t *testing.T) {
		m, _ := setupModel(t)
		m.cursor = 31

		press(m, runes("l"))

		assert.Equal(t, calendar.DisplayedMonth{Year: 2025, Month: 10}, m.view.Displayed)
		assert.Equal(t, 30, m.cursor)
	})
}

func TestModel_DayNavigation(t *testing.T) {
	m, _ := setupModel(t)
	m.cursor = 31

	press(m, runes("j"))
	assert.Equal(t, calendar.DisplayedMonth{Year: 2025, Month: 10}, m.view.Displayed)
	assert.Equal(t, 1, m.cursor)

	press(m, tea.KeyMsg{Type: tea.KeyUp}, runes("k"))
	assert.Equal(t, calendar.DisplayedMonth{Year: 2025, Month: 9}, m.view.Displayed)
	assert.Equal(t, 30, m.cursor)

	press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 31, m.cursor)
}

func TestModel_SelectAndToday(t *testing.T) {
	m, clock := setupModel(t)
	m.cursor = 26

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "2025-10-26", m.view.Selected)

	press(m, runes("l"), runes("l"))
	assert.Equal(t, "2025-10-26", m.view.Selected)

	clock.SetNow(time.Date(2025, time.November, 3, 8, 0, 0, 0, time.UTC))
	press(m, runes("t"))
	assert.Equal(t, calendar.DisplayedMonth{Year: 2025, Month: 10}, m.view.Displayed)
	assert.Equal(t, 3, m.cursor)
}

func TestModel_Quit(t *testing.T) {
	m, _ := setupModel(t)

	_, cmd := m.Update(runes("q"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_LoadError(t *testing.T) {
	m, _ := setupModel(t)

	m.Update(EventsLoadedMsg{Err: assert.AnError})

	assert.Equal(t, testEvents, m.events)
	assert.Contains(t, m.View(), assert.AnError.Error())
}

func TestModel_View(t *testing.T) {
	m, _ := setupModel(t)
	m.cursor = 26
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	out := m.View()

	assert.Contains(t, out, "October 2025")
	assert.Contains(t, out, "Sun")
	assert.Contains(t, out, "2025-10-26")
	assert.Contains(t, out, "10:00 Team Meeting")
	assert.NotContains(t, out, "Project Deadline")
}

func TestModel_ViewTruncatesLongTitles(t *testing.T) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.October, 26, 9, 0, 0, 0, time.UTC)}
	long := calendar.Event{ID: "3", Title: "An extremely long title that will never fit into the agenda box", Date: "2025-10-26", Time: "12:00", Category: calendar.Reminder}
	m := NewModel(staticSource{events: []calendar.Event{long}}, clock)
	m.Update(m.Init()())
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 40})

	out := m.View()

	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "agenda box")
}

func TestFit(t *testing.T) {
	assert.Equal(t, "10:00 Team Meeting", fit("10:00 Team Meeting", 18))
	assert.Equal(t, "10:00 Team Meeting", fit("10:00 Team Meeting", 30))

	short := fit("10:00 Team Meeting", 10)
	assert.True(t, strings.HasSuffix(short, "…"))
	assert.LessOrEqual(t, ansi.PrintableRuneWidth(short), 10)
}

func TestModel_ViewKeepsTitlesThatFitNarrowTerminal(t *testing.T) {
	m, _ := setupModel(t)
	m.cursor = 26
	m.Update(tea.WindowSizeMsg{Width: 24, Height: 40})

	out := m.View()

	assert.Contains(t, out, "10:00 Team Meeting")
}

package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the key format events and grid cells are matched on.
const DateLayout = "2006-01-02"

// MaxMarkers is how many category markers a day cell shows.
const MaxMarkers = 2

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// DisplayedMonth is a year and a zero-based month index (0 = January).
type DisplayedMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) DisplayedMonth {
	return DisplayedMonth{Year: t.Year(), Month: int(t.Month()) - 1}
}

func (m DisplayedMonth) first() time.Time {
	return time.Date(m.Year, time.Month(m.Month+1), 1, 0, 0, 0, 0, time.UTC)
}

// Title renders the month as e.g. "October 2025".
func (m DisplayedMonth) Title() string {
	first := m.first()
	return fmt.Sprintf("%s %d", first.Month(), first.Year())
}

// DaysInMonth returns the number of days of a zero-based month. Day 0 of the
// following month is the last day of the target month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the 1st of the month, 0 = Sunday.
func FirstWeekday(year, month int) int {
	return int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// FormatDate builds the YYYY-MM-DD key of a day. month is zero-based, the
// resulting string is one-based.
func FormatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month+1, day)
}

// ParseDate is the inverse of FormatDate and returns a zero-based month.
func ParseDate(date string) (year, month, day int, err error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return 0, 0, 0, err
	}
	return t.Year(), int(t.Month()) - 1, t.Day(), nil
}

// EventsOnDate returns, in input order, the events whose date equals date.
// It never returns nil.
func EventsOnDate(events []Event, date string) []Event {
	matched := make([]Event, 0)
	for _, e := range events {
		if e.Date == date {
			matched = append(matched, e)
		}
	}
	return matched
}

// AdvanceMonth moves by delta months, rolling over year boundaries.
func AdvanceMonth(current DisplayedMonth, delta int) DisplayedMonth {
	return MonthOf(time.Date(current.Year, time.Month(current.Month+1+delta), 1, 0, 0, 0, 0, time.UTC))
}

type Cell struct {
	Filler   bool       `json:"filler"`
	Day      int        `json:"day,omitempty"`
	Date     string     `json:"date,omitempty"`
	Events   []Event    `json:"events,omitempty"`
	Markers  []Category `json:"markers,omitempty"`
	Today    bool       `json:"today,omitempty"`
	Selected bool       `json:"selected,omitempty"`
}

type Grid struct {
	Month    DisplayedMonth `json:"month"`
	Title    string         `json:"title"`
	DayNames []string       `json:"dayNames"`
	Leading  int            `json:"leading"`
	Days     int            `json:"days"`
	Cells    []Cell         `json:"cells"`
}

// BuildGrid lays the month out in full weeks: FirstWeekday leading fillers,
// one cell per day, then trailing fillers up to a multiple of seven. today and
// selected are date keys; an empty selected means no selection.
func BuildGrid(month DisplayedMonth, events []Event, today string, selected string) Grid {
	leading := FirstWeekday(month.Year, month.Month)
	days := DaysInMonth(month.Year, month.Month)
	total := (leading + days + 6) / 7 * 7

	cells := make([]Cell, 0, total)
	for i := 0; i < leading; i++ {
		cells = append(cells, Cell{Filler: true})
	}
	for day := 1; day <= days; day++ {
		date := FormatDate(month.Year, month.Month, day)
		dayEvents := EventsOnDate(events, date)
		markers := make([]Category, 0, MaxMarkers)
		for _, e := range dayEvents {
			if len(markers) == MaxMarkers {
				break
			}
			markers = append(markers, e.Category)
		}
		cells = append(cells, Cell{
			Day:      day,
			Date:     date,
			Events:   dayEvents,
			Markers:  markers,
			Today:    date == today,
			Selected: selected != "" && date == selected,
		})
	}
	for len(cells) < total {
		cells = append(cells, Cell{Filler: true})
	}

	return Grid{
		Month:    month,
		Title:    month.Title(),
		DayNames: append([]string(nil), dayNames[:]...),
		Leading:  leading,
		Days:     days,
		Cells:    cells,
	}
}

// Weeks splits the cells into rows of seven.
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(g.Cells)/7)
	for i := 0; i+7 <= len(g.Cells); i += 7 {
		weeks = append(weeks, g.Cells[i:i+7])
	}
	return weeks
}

// Cell returns the cell of a day of the month (1-based).
func (g Grid) Cell(day int) (Cell, bool) {
	if day < 1 || day > g.Days {
		return Cell{}, false
	}
	return g.Cells[g.Leading+day-1], true
}

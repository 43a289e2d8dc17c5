package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func TestDaysInMonth(t *testing.T) {
	t.Run("February of a leap year has 29 days", func(t *testing.T) {
		assert.Equal(t, 29, DaysInMonth(2024, 1))
	})

	t.Run("February of a common year has 28 days", func(t *testing.T) {
		assert.Equal(t, 28, DaysInMonth(2025, 1))
	})

	t.Run("century years follow the 400 rule", func(t *testing.T) {
		assert.Equal(t, 28, DaysInMonth(1900, 1))
		assert.Equal(t, 29, DaysInMonth(2000, 1))
	})

	t.Run("every month is between 28 and 31 days", func(t *testing.T) {
		for year := 1896; year <= 2104; year++ {
			for month := 0; month < 12; month++ {
				days := DaysInMonth(year, month)
				assert.Contains(t, []int{28, 29, 30, 31}, days, "%d-%d", year, month)
				if month == 1 {
					assert.Equal(t, isLeap(year), days == 29, "year %d", year)
				}
			}
		}
	})

	t.Run("December and January", func(t *testing.T) {
		assert.Equal(t, 31, DaysInMonth(2025, 11))
		assert.Equal(t, 31, DaysInMonth(2026, 0))
		assert.Equal(t, 30, DaysInMonth(2025, 10))
	})
}

func TestFirstWeekday(t *testing.T) {
	t.Run("October 2025 starts on a Wednesday", func(t *testing.T) {
		assert.Equal(t, 3, FirstWeekday(2025, 9))
	})

	t.Run("result is always a weekday index", func(t *testing.T) {
		for year := 1990; year <= 2040; year++ {
			for month := 0; month < 12; month++ {
				wd := FirstWeekday(year, month)
				assert.GreaterOrEqual(t, wd, 0)
				assert.LessOrEqual(t, wd, 6)
			}
		}
	})

	t.Run("June 2025 starts on a Sunday", func(t *testing.T) {
		assert.Equal(t, 0, FirstWeekday(2025, 5))
	})
}

func TestFormatDate(t *testing.T) {
	t.Run("month is written one-based and zero-padded", func(t *testing.T) {
		assert.Equal(t, "2025-10-05", FormatDate(2025, 9, 5))
		assert.Equal(t, "2026-01-31", FormatDate(2026, 0, 31))
	})

	t.Run("parses back to the same day", func(t *testing.T) {
		for _, tc := range []struct{ year, month, day int }{
			{2024, 1, 29}, {2025, 0, 1}, {2025, 11, 31}, {1999, 6, 15},
		} {
			year, month, day, err := ParseDate(FormatDate(tc.year, tc.month, tc.day))
			require.NoError(t, err)
			assert.Equal(t, tc.year, year)
			assert.Equal(t, tc.month, month)
			assert.Equal(t, tc.day, day)
		}
	})

	t.Run("malformed dates do not parse", func(t *testing.T) {
		_, _, _, err := ParseDate("2025-02-30")
		assert.Error(t, err)
		_, _, _, err = ParseDate("2025-1-5")
		assert.Error(t, err)
	})
}

func TestEventsOnDate(t *testing.T) {
	events := []Event{
		{ID: "1", Title: "Team Meeting", Date: "2025-10-26", Time: "10:00", Category: Meeting},
		{ID: "2", Title: "Project Deadline", Date: "2025-10-28", Time: "17:00", Category: Task},
		{ID: "3", Title: "Call mom", Date: "2025-10-26", Time: "19:00", Category: Reminder},
	}

	t.Run("returns matching events in input order", func(t *testing.T) {
		matched := EventsOnDate(events, "2025-10-26")
		require.Len(t, matched, 2)
		assert.Equal(t, "1", matched[0].ID)
		assert.Equal(t, "3", matched[1].ID)
	})

	t.Run("returns exactly the first of the two seed events", func(t *testing.T) {
		matched := EventsOnDate(events[:2], "2025-10-26")
		assert.Equal(t, []Event{events[0]}, matched)
	})

	t.Run("returns an empty slice when nothing matches", func(t *testing.T) {
		matched := EventsOnDate(events, "2025-10-27")
		assert.NotNil(t, matched)
		assert.Empty(t, matched)
	})

	t.Run("is idempotent", func(t *testing.T) {
		first := EventsOnDate(events, "2025-10-28")
		second := EventsOnDate(events, "2025-10-28")
		assert.Equal(t, first, second)
		assert.Equal(t, "Project Deadline", events[1].Title)
	})

	t.Run("malformed event date matches nothing", func(t *testing.T) {
		broken := []Event{{ID: "x", Date: "2025-10-32"}}
		assert.Empty(t, EventsOnDate(broken, "2025-10-31"))
	})
}

func TestAdvanceMonth(t *testing.T) {
	t.Run("December rolls over to January of next year", func(t *testing.T) {
		assert.Equal(t, DisplayedMonth{Year: 2026, Month: 0}, AdvanceMonth(DisplayedMonth{Year: 2025, Month: 11}, 1))
	})

	t.Run("January rolls back to December of previous year", func(t *testing.T) {
		assert.Equal(t, DisplayedMonth{Year: 2024, Month: 11}, AdvanceMonth(DisplayedMonth{Year: 2025, Month: 0}, -1))
	})

	t.Run("within a year only the month changes", func(t *testing.T) {
		assert.Equal(t, DisplayedMonth{Year: 2025, Month: 10}, AdvanceMonth(DisplayedMonth{Year: 2025, Month: 9}, 1))
	})

	t.Run("next then previous is the identity", func(t *testing.T) {
		start := DisplayedMonth{Year: 2025, Month: 9}
		assert.Equal(t, start, AdvanceMonth(AdvanceMonth(start, 1), -1))
	})
}

func TestMonthOf(t *testing.T) {
	m := MonthOf(time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, DisplayedMonth{Year: 2025, Month: 9}, m)
	assert.Equal(t, "October 2025", m.Title())
}

func TestBuildGrid(t *testing.T) {
	events := []Event{
		{ID: "1", Title: "Team Meeting", Date: "2025-10-26", Time: "10:00", Category: Meeting},
		{ID: "2", Title: "Project Deadline", Date: "2025-10-28", Time: "17:00", Category: Task},
		{ID: "3", Title: "Standup", Date: "2025-10-28", Time: "09:00", Category: Meeting},
		{ID: "4", Title: "Pay rent", Date: "2025-10-28", Time: "12:00", Category: Reminder},
	}
	october := DisplayedMonth{Year: 2025, Month: 9}

	t.Run("fillers precede the first day and the grid is padded to full weeks", func(t *testing.T) {
		grid := BuildGrid(october, events, "", "")

		assert.Equal(t, "October 2025", grid.Title)
		assert.Equal(t, []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, grid.DayNames)
		assert.Equal(t, 3, grid.Leading)
		assert.Equal(t, 31, grid.Days)
		assert.Len(t, grid.Cells, 35)
		for i := 0; i < 3; i++ {
			assert.True(t, grid.Cells[i].Filler)
		}
		assert.Equal(t, 1, grid.Cells[3].Day)
		assert.Equal(t, "2025-10-01", grid.Cells[3].Date)
		assert.True(t, grid.Cells[34].Filler)
		assert.Len(t, grid.Weeks(), 5)
	})

	t.Run("a month that fills whole weeks has no trailing fillers", func(t *testing.T) {
		grid := BuildGrid(DisplayedMonth{Year: 2026, Month: 1}, nil, "", "")

		assert.Equal(t, 0, grid.Leading)
		assert.Equal(t, 28, grid.Days)
		assert.Len(t, grid.Cells, 28)
	})

	t.Run("cell count is ceil((filler + days) / 7) * 7", func(t *testing.T) {
		for month := 0; month < 12; month++ {
			m := DisplayedMonth{Year: 2025, Month: month}
			grid := BuildGrid(m, nil, "", "")
			filler := FirstWeekday(m.Year, m.Month)
			days := DaysInMonth(m.Year, m.Month)
			want := (filler + days + 6) / 7 * 7
			assert.Len(t, grid.Cells, want, "month %d", month)
		}
	})

	t.Run("events are associated with their days", func(t *testing.T) {
		grid := BuildGrid(october, events, "", "")

		cell, ok := grid.Cell(26)
		require.True(t, ok)
		require.Len(t, cell.Events, 1)
		assert.Equal(t, "Team Meeting", cell.Events[0].Title)
		assert.Equal(t, []Category{Meeting}, cell.Markers)

		cell, ok = grid.Cell(28)
		require.True(t, ok)
		assert.Len(t, cell.Events, 3)
		assert.Equal(t, []Category{Task, Meeting}, cell.Markers)

		cell, ok = grid.Cell(27)
		require.True(t, ok)
		assert.Empty(t, cell.Events)
	})

	t.Run("today and selection are flagged", func(t *testing.T) {
		grid := BuildGrid(october, events, "2025-10-15", "2025-10-20")

		today, _ := grid.Cell(15)
		assert.True(t, today.Today)
		selected, _ := grid.Cell(20)
		assert.True(t, selected.Selected)
		other, _ := grid.Cell(21)
		assert.False(t, other.Today)
		assert.False(t, other.Selected)
	})

	t.Run("out of range days have no cell", func(t *testing.T) {
		grid := BuildGrid(october, nil, "", "")
		_, ok := grid.Cell(0)
		assert.False(t, ok)
		_, ok = grid.Cell(32)
		assert.False(t, ok)
	})
}

func TestView(t *testing.T) {
	t.Run("starts at the current month without a selection", func(t *testing.T) {
		v := NewView(time.Date(2025, time.December, 3, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, DisplayedMonth{Year: 2025, Month: 11}, v.Displayed)
		assert.Empty(t, v.Selected)
	})

	t.Run("selecting the same date twice keeps it selected", func(t *testing.T) {
		v := NewView(time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC))
		v = v.Select("2025-10-26").Select("2025-10-26")
		assert.Equal(t, "2025-10-26", v.Selected)
	})

	t.Run("navigation keeps the selection", func(t *testing.T) {
		v := NewView(time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC)).Select("2025-10-26")
		v = v.Next()
		assert.Equal(t, DisplayedMonth{Year: 2025, Month: 10}, v.Displayed)
		assert.Equal(t, "2025-10-26", v.Selected)
	})
}

func TestCategory(t *testing.T) {
	for _, c := range Categories {
		parsed, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
		assert.NotEmpty(t, c.Color())
		assert.NotEmpty(t, c.Hex())
	}

	_, err := ParseCategory("birthday")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

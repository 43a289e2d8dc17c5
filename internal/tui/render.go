package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/klokku/creatordash/pkg/calendar"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	cellWidth     = 6
	minAgendaWide = 20
	// gridWidth is the agenda width before the terminal size is known.
	gridWidth = 7 * cellWidth
	markerGlyph   = "•"
)

type Styles struct {
	Title    lipgloss.Style
	DayName  lipgloss.Style
	Normal   lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style
	Agenda   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F97316")).
			Bold(true),
		DayName: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Cursor: lipgloss.NewStyle().
			Reverse(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("#F97316")).
			Bold(true),
		Today: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F97316")).
			Underline(true),
		Agenda: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

func (m *Model) View() string {
	grid := calendar.BuildGrid(m.view.Displayed, m.events, m.today(), m.view.Selected)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(grid.Title))
	b.WriteString("\n\n")

	for _, name := range grid.DayNames {
		b.WriteString(m.styles.DayName.Render(pad(name)))
	}
	b.WriteString("\n")

	for _, week := range grid.Weeks() {
		for _, cell := range week {
			b.WriteString(m.renderCell(cell))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderAgenda())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("h/l month  j/k day  enter select  t today  r reload  q quit"))
	return b.String()
}

func (m *Model) renderCell(cell calendar.Cell) string {
	if cell.Filler {
		return pad("")
	}

	number := fmt.Sprintf("%2d", cell.Day)
	style := m.styles.Normal
	switch {
	case cell.Selected:
		style = m.styles.Selected
	case cell.Today:
		style = m.styles.Today
	}
	if cell.Day == m.cursor {
		style = style.Inherit(m.styles.Cursor)
	}

	markers := ""
	for _, c := range cell.Markers {
		markers += lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(markerGlyph)
	}
	// markers are one column each; pad by visible width
	return style.Render(number) + markers + strings.Repeat(" ", cellWidth-2-len(cell.Markers))
}

func (m *Model) renderAgenda() string {
	date := m.agendaDate()
	total := m.width
	if total == 0 {
		total = gridWidth
	}
	// marker and space precede every title
	budget := max(total, minAgendaWide) - m.styles.Agenda.GetHorizontalFrameSize() - 2

	lines := []string{date}
	events := calendar.EventsOnDate(m.events, date)
	if len(events) == 0 {
		lines = append(lines, "No events")
	}
	for _, e := range events {
		marker := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Category.Hex())).Render(markerGlyph)
		line := fmt.Sprintf("%s %s", e.Time, e.Title)
		lines = append(lines, marker+" "+fit(line, budget))
	}
	return m.styles.Agenda.Render(strings.Join(lines, "\n"))
}

// fit shortens s with an ellipsis only when it is wider than width.
func fit(s string, width int) string {
	if ansi.PrintableRuneWidth(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

func pad(s string) string {
	return fmt.Sprintf("%-*s", cellWidth, s)
}

package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	log "github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"
)

const productId = "-//creatordash//calendar//EN"

// eventLength is the duration exported for events, which only carry a start.
const eventLength = time.Hour

var (
	ErrEmptyCalendar   = errors.New("empty calendar body")
	ErrInvalidCalendar = errors.New("invalid calendar")
)

// ImportWindow bounds recurrence expansion on import.
type ImportWindow struct {
	From           time.Time
	To             time.Time
	MaxOccurrences int
}

// NewImportWindow centers a window of months around now.
func NewImportWindow(now time.Time, months int, maxOccurrences int) ImportWindow {
	return ImportWindow{
		From:           now.AddDate(0, -months, 0),
		To:             now.AddDate(0, months, 0),
		MaxOccurrences: maxOccurrences,
	}
}

// RenderICS serializes events as an iCalendar document. Start times are
// interpreted in loc.
func RenderICS(events []Event, loc *time.Location, now time.Time) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productId)

	for _, e := range events {
		start, err := e.Start(loc)
		if err != nil {
			log.Warnf("skipping event %s with malformed start %q %q", e.ID, e.Date, e.Time)
			continue
		}
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(now)
		ve.SetStartAt(start)
		ve.SetEndAt(start.Add(eventLength))
		ve.SetSummary(e.Title)
		ve.SetProperty(ical.ComponentPropertyCategories, string(e.Category))
	}
	return cal.Serialize(), nil
}

// ParseICS turns the VEVENTs of an iCalendar document into events without
// ids. Recurring events are expanded within window; other events are taken
// as they are. Malformed VEVENTs are skipped.
//
// UTC and TZID starts are converted to loc. All-day and floating starts have
// no zone: they keep their wall clock and are placed in loc as they are.
func ParseICS(r io.Reader, loc *time.Location, window ImportWindow) ([]Event, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyCalendar
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCalendar, err)
	}

	events := make([]Event, 0)
	for _, ve := range cal.Events() {
		starts, err := occurrences(ve, loc, window)
		if err != nil {
			log.Warnf("skipping vevent %s: %v", ve.Id(), err)
			continue
		}
		title := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			title = p.Value
		}
		category := categoryOf(ve)
		for _, start := range starts {
			start = start.In(loc)
			events = append(events, Event{
				Title:    title,
				Date:     start.Format(DateLayout),
				Time:     start.Format(TimeLayout),
				Category: category,
			})
		}
	}
	return events, nil
}

func occurrences(ve *ical.VEvent, loc *time.Location, window ImportWindow) ([]time.Time, error) {
	dtstart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtstart == nil {
		return nil, errors.New("missing start")
	}
	start, err := parseICSTime(dtstart.Value, dtstart.ICalParameters, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid start %q: %w", dtstart.Value, err)
	}

	p := ve.GetProperty(ical.ComponentPropertyRrule)
	if p == nil || p.Value == "" {
		return []time.Time{start}, nil
	}

	rule, err := rrule.StrToRRule(p.Value)
	if err != nil {
		return nil, fmt.Errorf("invalid rrule %q: %w", p.Value, err)
	}
	rule.DTStart(start)

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, value := range strings.Split(ex.Value, ",") {
			// zone-less exclusions follow the zone of the start they cancel
			exTime, err := parseICSTime(value, ex.ICalParameters, start.Location())
			if err != nil {
				continue
			}
			if isDateOnly(value, ex.ICalParameters) {
				exTime = time.Date(exTime.Year(), exTime.Month(), exTime.Day(),
					start.Hour(), start.Minute(), start.Second(), 0, start.Location())
			}
			set.ExDate(exTime)
		}
	}

	starts := set.Between(window.From.In(start.Location()), window.To.In(start.Location()), true)
	if window.MaxOccurrences > 0 && len(starts) > window.MaxOccurrences {
		log.Warnf("vevent %s has more than %d occurrences, truncating", ve.Id(), window.MaxOccurrences)
		starts = starts[:window.MaxOccurrences]
	}
	return starts, nil
}

// parseICSTime reads a DATE or DATE-TIME value. UTC values (trailing Z) are
// absolute, TZID values are read in their zone, and zone-less values (dates
// and floating times) are read in floating.
func parseICSTime(value string, params map[string][]string, floating *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if isDateOnly(value, params) {
		return time.ParseInLocation("20060102", value, floating)
	}
	if strings.HasSuffix(value, "Z") {
		return time.Parse("20060102T150405Z", value)
	}
	zone := floating
	if tzid := firstParam(params, string(ical.ParameterTzid)); tzid != "" {
		if tz, err := time.LoadLocation(tzid); err == nil {
			zone = tz
		} else {
			log.Warnf("unknown TZID %q, reading %s as floating time", tzid, value)
		}
	}
	return time.ParseInLocation("20060102T150405", value, zone)
}

func isDateOnly(value string, params map[string][]string) bool {
	return strings.EqualFold(firstParam(params, string(ical.ParameterValue)), "DATE") ||
		len(strings.TrimSpace(value)) == len("20060102")
}

func firstParam(params map[string][]string, name string) string {
	if values := params[name]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// categoryOf takes the first CATEGORIES value naming a known category and
// falls back to Reminder.
func categoryOf(ve *ical.VEvent) Category {
	for _, p := range ve.GetProperties(ical.ComponentPropertyCategories) {
		for _, value := range strings.Split(p.Value, ",") {
			if c, err := ParseCategory(strings.ToLower(strings.TrimSpace(value))); err == nil {
				return c
			}
		}
	}
	return Reminder
}

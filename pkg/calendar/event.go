package calendar

import (
	"errors"
	"time"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidCategory = errors.New("invalid category")
)

const TimeLayout = "15:04"

// Event is a calendar entry on a single day. Values are immutable once
// stored; updates store a replacement.
type Event struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Category Category `json:"type"`
}

// Start combines Date and Time in loc.
func (e Event) Start(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, loc)
}

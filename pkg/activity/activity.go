package activity

import (
	"fmt"
	"time"
)

type Type string

const (
	VideoActivity      Type = "video"
	AccountActivity    Type = "account"
	ImageActivity      Type = "image"
	LinkActivity       Type = "link"
	NoteActivity       Type = "note"
	EventActivity      Type = "event"
	AutomationActivity Type = "automation"
)

// Icon is the name of the icon the dashboard shows next to the entry.
func (t Type) Icon() string {
	switch t {
	case VideoActivity:
		return "video"
	case AccountActivity:
		return "users"
	case ImageActivity:
		return "image"
	case LinkActivity:
		return "link"
	case NoteActivity:
		return "file-text"
	case EventActivity:
		return "calendar"
	case AutomationActivity:
		return "zap"
	}
	panic(fmt.Sprintf("activity: unknown type %q", string(t)))
}

type Activity struct {
	Action string    `json:"action"`
	Type   Type      `json:"type"`
	At     time.Time `json:"at"`
}

// RelativeTime renders the distance from at to now the way the dashboard
// lists recent activity: "Just now", "1 minute ago", "3 hours ago".
func RelativeTime(at, now time.Time) string {
	d := now.Sub(at)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	default:
		return plural(int(d/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

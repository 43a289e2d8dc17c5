package calendar

import "fmt"

type Category string

const (
	Meeting  Category = "meeting"
	Task     Category = "task"
	Reminder Category = "reminder"
)

var Categories = []Category{Meeting, Task, Reminder}

func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case Meeting, Task, Reminder:
		return Category(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// Color is the marker color of the category.
func (c Category) Color() string {
	switch c {
	case Meeting:
		return "blue"
	case Task:
		return "green"
	case Reminder:
		return "orange"
	}
	panic(fmt.Sprintf("calendar: unknown category %q", string(c)))
}

// Hex is Color as an RGB value, used by terminal rendering.
func (c Category) Hex() string {
	switch c {
	case Meeting:
		return "#3B82F6"
	case Task:
		return "#22C55E"
	case Reminder:
		return "#F97316"
	}
	panic(fmt.Sprintf("calendar: unknown category %q", string(c)))
}

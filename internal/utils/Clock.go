package utils

import "time"

// DateLayout is the ISO calendar date layout used for every date string the
// dashboard stores.
const DateLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}

func (m *MockClock) Advance(d time.Duration) {
	m.FixedNow = m.FixedNow.Add(d)
}

// Today returns the clock's current date as YYYY-MM-DD.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

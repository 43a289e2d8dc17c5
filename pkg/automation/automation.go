package automation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAlreadyRunning = errors.New("automation already running")
	ErrNotRunning     = errors.New("automation is not running")
	ErrAlreadyIdle    = errors.New("automation already idle")
	ErrShuttingDown   = errors.New("automation is shutting down")
)

type Status string

const (
	Idle    Status = "idle"
	Running Status = "running"
	Paused  Status = "paused"
)

// Label is the headline shown for the status.
func (s Status) Label() string {
	switch s {
	case Idle:
		return "Automation Idle"
	case Running:
		return "Automation Running"
	case Paused:
		return "Automation Paused"
	}
	panic(fmt.Sprintf("automation: unknown status %q", string(s)))
}

// Description is the one-line hint below the label.
func (s Status) Description() string {
	switch s {
	case Idle:
		return "Ready to start"
	case Running:
		return "Processing tasks..."
	case Paused:
		return "Paused"
	}
	panic(fmt.Sprintf("automation: unknown status %q", string(s)))
}

type LogEntry struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// State is a snapshot of one runner.
type State struct {
	Status         Status `json:"status"`
	Label          string `json:"label"`
	Description    string `json:"description"`
	Progress       int    `json:"progress"`
	TasksCompleted int    `json:"tasksCompleted"`
	// EstimatedRemaining is in seconds and only set while running.
	EstimatedRemaining *int       `json:"estimatedRemaining,omitempty"`
	Log                []LogEntry `json:"log"`
}

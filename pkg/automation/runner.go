package automation

import (
	"sync"
	"time"
)

const maxLogEntries = 10

// Runner is the automation state machine of one user:
//
//	idle -> running (Start)
//	running -> paused (Pause), paused -> running (Start)
//	running|paused -> idle (Stop, progress and tasks reset)
//	running -> idle (Tick reaching 100%, progress kept)
type Runner struct {
	mu       sync.Mutex
	status   Status
	progress int
	tasks    int
	step     int
	log      []LogEntry
	// looping is true while a ticker goroutine drives this runner.
	looping bool
}

func NewRunner(step int) *Runner {
	return &Runner{status: Idle, step: step}
}

// Start begins a run from idle or resumes a paused one. It reports whether
// the caller has to start a ticker loop.
func (r *Runner) Start(now time.Time) (startLoop bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.status {
	case Running:
		return false, ErrAlreadyRunning
	case Paused:
		r.addLog(now, "Run resumed")
	case Idle:
		r.progress = 0
		r.tasks = 0
		r.addLog(now, "Run started")
	}
	r.status = Running
	if r.looping {
		return false, nil
	}
	r.looping = true
	return true, nil
}

func (r *Runner) Pause(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != Running {
		return ErrNotRunning
	}
	r.status = Paused
	r.addLog(now, "Run paused")
	return nil
}

func (r *Runner) Stop(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == Idle {
		return ErrAlreadyIdle
	}
	r.status = Idle
	r.progress = 0
	r.tasks = 0
	r.addLog(now, "Run stopped")
	return nil
}

// Tick advances a running runner by one step. Paused runners do not move.
// exit tells the ticker loop to end, completed that this tick finished the
// run.
func (r *Runner) Tick(now time.Time) (exit bool, completed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.status {
	case Idle:
		r.looping = false
		return true, false
	case Paused:
		return false, false
	}

	r.progress += r.step
	r.tasks++
	if r.progress < 100 {
		return false, false
	}
	r.progress = 100
	r.status = Idle
	r.looping = false
	r.addLog(now, "Run completed")
	return true, true
}

// Release marks the ticker loop as gone without touching the state, used when
// the loop is cancelled.
func (r *Runner) Release() {
	r.mu.Lock()
	r.looping = false
	r.mu.Unlock()
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	state := State{
		Status:         r.status,
		Label:          r.status.Label(),
		Description:    r.status.Description(),
		Progress:       r.progress,
		TasksCompleted: r.tasks,
		Log:            append([]LogEntry(nil), r.log...),
	}
	if r.status == Running {
		remaining := (100 - r.progress + 1) / 2
		state.EstimatedRemaining = &remaining
	}
	return state
}

// addLog keeps the newest entries first. Callers hold mu.
func (r *Runner) addLog(at time.Time, message string) {
	entries := make([]LogEntry, 0, maxLogEntries)
	entries = append(entries, LogEntry{At: at, Message: message})
	for _, e := range r.log {
		if len(entries) == maxLogEntries {
			break
		}
		entries = append(entries, e)
	}
	r.log = entries
}

package automation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/klokku/creatordash/internal/event_bus"
	"github.com/klokku/creatordash/internal/utils"
	"github.com/klokku/creatordash/pkg/user"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type Settings struct {
	TickInterval time.Duration
	Step         int
	// Schedule is an optional cron spec; when set, idle runners of all users
	// are started on every activation.
	Schedule string
}

// UserLister returns every registered user.
type UserLister func(ctx context.Context) ([]user.User, error)

type Service struct {
	mu       sync.Mutex
	runners  map[int]*Runner
	// ctx bounds every runner loop; it is cancelled when Run returns.
	ctx      context.Context
	cancel   context.CancelFunc
	closed   bool
	settings Settings
	users    UserLister
	eventBus *event_bus.EventBus
	clock    utils.Clock
	loops    sync.WaitGroup
}

func NewService(settings Settings, users UserLister, eventBus *event_bus.EventBus, clock utils.Clock) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		runners:  make(map[int]*Runner),
		ctx:      ctx,
		cancel:   cancel,
		settings: settings,
		users:    users,
		eventBus: eventBus,
		clock:    clock,
	}
}

// Run starts the cron schedule if configured and blocks until ctx is done.
// Runner loops, including those started before Run, are stopped before it
// returns and no new ones start afterwards.
func (s *Service) Run(ctx context.Context) error {
	defer s.shutdown()

	var scheduler *cron.Cron
	if s.settings.Schedule != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(s.settings.Schedule, func() {
			started := s.StartIdle(ctx)
			log.Infof("scheduled automation started %d runner(s)", started)
		})
		if err != nil {
			return fmt.Errorf("invalid automation schedule %q: %w", s.settings.Schedule, err)
		}
		scheduler.Start()
		log.Infof("Automation schedule enabled: %s", s.settings.Schedule)
	}

	<-ctx.Done()
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}
	return nil
}

func (s *Service) shutdown() {
	s.mu.Lock()
	s.closed = true
	s.cancel()
	s.mu.Unlock()
	s.loops.Wait()
}

func (s *Service) State(ctx context.Context) (State, error) {
	r, err := s.currentRunner(ctx)
	if err != nil {
		return State{}, err
	}
	return r.State(), nil
}

func (s *Service) Start(ctx context.Context) (State, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return State{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if s.isClosed() {
		return State{}, ErrShuttingDown
	}
	r := s.runner(userId)
	startLoop, err := r.Start(s.clock.Now())
	if err != nil {
		return State{}, err
	}
	if startLoop {
		s.loop(userId, r)
	}
	return r.State(), nil
}

func (s *Service) Pause(ctx context.Context) (State, error) {
	r, err := s.currentRunner(ctx)
	if err != nil {
		return State{}, err
	}
	if err := r.Pause(s.clock.Now()); err != nil {
		return State{}, err
	}
	return r.State(), nil
}

func (s *Service) Stop(ctx context.Context) (State, error) {
	r, err := s.currentRunner(ctx)
	if err != nil {
		return State{}, err
	}
	if err := r.Stop(s.clock.Now()); err != nil {
		return State{}, err
	}
	return r.State(), nil
}

// StartIdle starts the runner of every user whose runner is idle and returns
// how many were started.
func (s *Service) StartIdle(ctx context.Context) int {
	users, err := s.users(ctx)
	if err != nil {
		log.Errorf("failed to list users for scheduled automation: %v", err)
		return 0
	}
	started := 0
	for _, u := range users {
		r := s.runner(u.Id)
		if r.State().Status != Idle {
			continue
		}
		startLoop, err := r.Start(s.clock.Now())
		if err != nil {
			continue
		}
		if startLoop {
			s.loop(u.Id, r)
		}
		started++
	}
	return started
}

func (s *Service) currentRunner(ctx context.Context) (*Runner, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.runner(userId), nil
}

func (s *Service) runner(userId int) *Runner {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.runners[userId]
	if !ok {
		r = NewRunner(s.settings.Step)
		s.runners[userId] = r
	}
	return r
}

func (s *Service) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Service) loop(userId int, r *Runner) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		r.Release()
		log.Warnf("automation of user %d not started: shutting down", userId)
		return
	}
	ctx := s.ctx
	// Add happens under mu so it cannot race with Wait in shutdown.
	s.loops.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.loops.Done()
		ticker := time.NewTicker(s.settings.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				r.Release()
				return
			case <-ticker.C:
				exit, completed := r.Tick(s.clock.Now())
				if completed {
					s.publishCompleted(ctx, userId, r.State().TasksCompleted)
				}
				if exit {
					return
				}
			}
		}
	}()
}

func (s *Service) publishCompleted(ctx context.Context, userId int, tasks int) {
	err := s.eventBus.Publish(event_bus.NewEventAt(ctx, event_bus.AutomationRunCompletedType, event_bus.AutomationRunCompleted{
		UserId:         userId,
		TasksCompleted: tasks,
	}, s.clock.Now()))
	if err != nil {
		log.Errorf("failed to publish automation completion: %v", err)
	}
}

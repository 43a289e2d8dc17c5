package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/klokku/creatordash/internal/config"
	"github.com/klokku/creatordash/internal/database"
	"github.com/klokku/creatordash/internal/utils"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg   config.Application
	deps  *Dependencies
	srv   *http.Server
	close func()
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	repos, closeDb, err := openRepositories(cfg)
	if err != nil {
		return nil, err
	}

	deps := BuildDependencies(repos, cfg, &utils.SystemClock{})
	r := NewRouter(deps)

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Listen,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, srv: srv, close: closeDb}, nil
}

func openRepositories(cfg config.Application) (Repositories, func(), error) {
	if cfg.Storage.Backend != config.PostgresStorage {
		log.Info("Using in-memory storage")
		return MemoryRepositories(), func() {}, nil
	}

	if err := database.Migrate(cfg.Database); err != nil {
		return Repositories{}, nil, err
	}
	db, err := database.Open(context.Background(), cfg.Database)
	if err != nil {
		return Repositories{}, nil, err
	}
	log.Infof("Using Postgres storage at %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
	return PostgresRepositories(db), db.Close, nil
}

// Run starts the HTTP server and the automation runners and blocks until
// SIGINT or SIGTERM, then shuts both down.
func (a *Application) Run() error {
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	automationDone := make(chan error, 1)
	go func() {
		automationDone <- a.deps.AutomationService.Run(ctx)
	}()

	serverDone := make(chan error, 1)
	go func() {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverDone <- err
			return
		}
		serverDone <- nil
	}()

	var serveErr, automationErr error
	automationStopped := false
	select {
	case <-ctx.Done():
		log.Info("Shutting down")
	case serveErr = <-serverDone:
	case automationErr = <-automationDone:
		automationStopped = true
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to shut down server: %v", err)
	}
	if !automationStopped {
		automationErr = <-automationDone
	}
	if serveErr != nil {
		return fmt.Errorf("server failed: %w", serveErr)
	}
	if automationErr != nil {
		return fmt.Errorf("automation failed: %w", automationErr)
	}
	return nil
}

package test_utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/creatordash/internal/config"
	"github.com/klokku/creatordash/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "creatordash"
	dbUser     = "test_creatordash"
	dbPassword = "test_creatordash"
)

func preparePostgresContainer() (*postgres.PostgresContainer, error) {
	ctx := context.Background()

	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %v", err)
	}

	pgContainer, err := startContainer(func() (*postgres.PostgresContainer, error) {
		return postgres.Run(
			ctx, "postgres:18.1-alpine",
			postgres.WithInitScripts(filepath.Join(projectRoot, "dev", "init.sql")),
			postgres.WithDatabase(dbName),
			postgres.WithUsername(dbUser),
			postgres.WithPassword(dbPassword),
			postgres.BasicWaitStrategies(),
		)
	})
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return nil, err
	}
	return pgContainer, nil
}

// startContainer turns the panic testcontainers raises when it cannot find a
// Docker host into an error, so callers can skip instead of crashing.
func startContainer(run func() (*postgres.PostgresContainer, error)) (container *postgres.PostgresContainer, err error) {
	defer func() {
		if r := recover(); r != nil {
			container = nil
			err = fmt.Errorf("container runtime not available: %v", r)
		}
	}()
	return run()
}

// TestWithDB starts a Postgres container, applies all migrations and
// snapshots the result so tests can Restore a clean schema. It returns an
// error, never panics, when no container runtime is available.
func TestWithDB() (*postgres.PostgresContainer, func() *pgxpool.Pool, error) {
	ctx := context.Background()

	container, err := preparePostgresContainer()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432/tcp")

	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:     host,
		Port:     port.Int(),
		User:     dbUser,
		Pass:     dbPassword,
		Name:     dbName,
		Schema:   "creatordash",
		MaxConns: 4,
	}

	if err := database.Migrate(cfg); err != nil {
		return container, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	// the snapshot database cannot have open connections
	if err := container.Snapshot(ctx, postgres.WithSnapshotName("postgres-test-snapshot")); err != nil {
		return container, nil, fmt.Errorf("failed to snapshot postgres container: %w", err)
	}

	return container, func() *pgxpool.Pool {
		db, err := database.Open(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to open database connection: %v", err)
		}
		return db
	}, nil
}

// findProjectRoot walks up from the working directory to the directory
// holding go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root")
		}
		dir = parent
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

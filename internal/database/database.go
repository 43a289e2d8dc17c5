// Package database opens the Postgres pool used by the postgres storage
// backend and applies the embedded schema migrations.
package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/creatordash/internal/config"
	"github.com/klokku/creatordash/migrations"
	log "github.com/sirupsen/logrus"
)

// connectionURL builds a postgres:// URL understood by both pgx and the
// migrate driver. search_path is passed through as a runtime parameter.
func connectionURL(cfg config.Database) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Pass),
		Host:   cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:   "/" + cfg.Name,
	}
	q := url.Values{}
	q.Set("sslmode", "disable")
	if cfg.Schema != "" {
		q.Set("search_path", cfg.Schema)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func Open(ctx context.Context, cfg config.Database) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connectionURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	poolConfig.MinConns = 1

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database %s at %s: %w", cfg.Name, cfg.Host, err)
	}
	log.Debugf("connected to database %s (schema %s, max %d connections)", cfg.Name, cfg.Schema, poolConfig.MaxConns)
	return pool, nil
}

// Migrate brings the schema up to the latest embedded migration.
func Migrate(cfg config.Database) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, connectionURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Debug("database schema is up to date")
	case err != nil:
		return fmt.Errorf("migration up failed: %w", err)
	default:
		version, _, _ := m.Version()
		log.Infof("database schema migrated to version %d", version)
	}
	return nil
}

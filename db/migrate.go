// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrations embed.FS

// migrate brings the schema up to the latest version.
func (s *Store) migrate(ctx context.Context) error {
	src, err := iofs.New(migrations, "migrations/"+s.driver)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	var dst database.Driver
	switch s.driver {
	case DriverPostgres:
		// A dedicated connection; closing the migrator releases it and leaves
		// the pool open.
		conn, err := s.conn.Conn(ctx)
		if err != nil {
			return fmt.Errorf("failed to reserve migration connection: %w", err)
		}
		dst, err = postgres.WithConnection(ctx, conn, &postgres.Config{})
		if err != nil {
			conn.Close()
			return fmt.Errorf("failed to prepare migrations: %w", err)
		}
	default:
		dst, err = sqlite.WithInstance(s.conn, &sqlite.Config{})
		if err != nil {
			return fmt.Errorf("failed to prepare migrations: %w", err)
		}
	}

	migrator, err := migrate.NewWithInstance("iofs", src, s.driver, dst)
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}
	// The sqlite driver closes the *sql.DB it wraps.
	if s.driver == DriverPostgres {
		defer migrator.Close()
	}

	err = migrator.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		// already up to date
	case err != nil:
		return fmt.Errorf("migration failed: %w", err)
	default:
		version, _, _ := migrator.Version()
		slog.Info("database migrated", "driver", s.driver, "version", version)
	}
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickly-survey/apperr"
)

// Supported driver names, as registered with database/sql.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store owns the connection pool. Build one with Open at start-up and Close it
// at shutdown.
type Store struct {
	conn   *sql.DB
	driver string
}

// Open connects to the database, verifies the connection and applies pending
// migrations.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case DriverPostgres:
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	default:
		return nil, fmt.Errorf("unsupported database type %q", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// One connection serializes writers; SQLite has no row locks.
		conn.SetMaxOpenConns(1)
	} else {
		conn.SetMaxOpenConns(20)
		conn.SetMaxIdleConns(10)
		conn.SetConnMaxIdleTime(5 * time.Minute)
		conn.SetConnMaxLifetime(2 * time.Hour)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	s := &Store{conn: conn, driver: driver}
	if err := s.migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// sqliteDSN adds the pragmas the store relies on unless the caller set them.
func sqliteDSN(dsn string) string {
	params := []string{
		"_pragma=foreign_keys(1)",
		"_pragma=busy_timeout(5000)",
		"_time_format=sqlite",
	}
	for _, p := range params {
		key, _, _ := strings.Cut(p, "(")
		if strings.Contains(dsn, key) {
			continue
		}
		if strings.Contains(dsn, "?") {
			dsn += "&" + p
		} else {
			dsn += "?" + p
		}
	}
	return dsn
}

// Driver returns the database/sql driver name.
func (s *Store) Driver() string {
	return s.driver
}

// DB exposes the pool for health checks.
func (s *Store) DB() *sql.DB {
	return s.conn
}

func (s *Store) Close() error {
	return s.conn.Close()
}

// Queries returns queries that run outside any transaction. Services go
// through WithTx; this is for tests and read-only tooling. Do not call it from
// inside a WithTx callback: on SQLite the only connection is held by the
// transaction.
func (s *Store) Queries() *Queries {
	return &Queries{q: s.conn, driver: s.driver}
}

// WithTx runs fn in a transaction. It commits when fn returns nil and rolls
// back otherwise. Domain errors from fn are returned unchanged; any other
// failure is wrapped as apperr.Database with op as the operation name.
func (s *Store) WithTx(ctx context.Context, op string, fn func(q *Queries) error) (err error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Database(op, err)
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Queries{q: tx, driver: s.driver}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.Warn("rollback failed", "op", op, "error", rbErr)
		}
		if _, ok := apperr.As(err); ok {
			return err
		}
		return apperr.Database(op, err)
	}

	if err := tx.Commit(); err != nil {
		return apperr.Database(op, err)
	}
	return nil
}

// Queries holds every statement the application runs, bound to either the
// pool or a transaction.
type Queries struct {
	q      querier
	driver string
}

// forUpdate is the row lock suffix for the current dialect.
func (q *Queries) forUpdate() string {
	if q.driver == DriverPostgres {
		return " FOR UPDATE"
	}
	return ""
}

// utc normalizes a time read from the database.
func utc(t time.Time) time.Time {
	return t.UTC()
}

func nullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func nullInt(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}

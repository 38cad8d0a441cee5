// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kvstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/retro-board/db"
)

// Backend names accepted by Open
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendBadger   = "badger"
)

// Open connects to the backend named by backend. url is the SQLite file or
// DSN, the PostgreSQL connection string, or the badger data directory.
func Open(ctx context.Context, backend, url string, logger *slog.Logger) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemoryStore(), nil

	case BackendSQLite:
		conn, err := sql.Open("sqlite", url)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// One connection: SQLite serializes writers anyway, and ":memory:"
		// databases are per-connection.
		conn.SetMaxOpenConns(1)
		return openSQL(ctx, conn, db.DialectSQLite)

	case BackendPostgres:
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return openSQL(ctx, conn, db.DialectPostgres)

	case BackendBadger:
		cfg := DefaultBadgerConfig(url)
		cfg.Logger = logger
		return OpenBadger(cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}

func openSQL(ctx context.Context, conn *sql.DB, dialect string) (Store, error) {
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	s, err := NewSQLStore(conn, dialect)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

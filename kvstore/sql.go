// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package kvstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/danielhkuo/retro-board/db"
)

// SQLStore keeps documents in the kv table of a SQLite or PostgreSQL database.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

// NewSQLStore wraps an open connection and makes sure the schema exists.
func NewSQLStore(conn *sql.DB, dialect string) (*SQLStore, error) {
	if err := db.CreateSchema(conn, dialect); err != nil {
		return nil, err
	}
	return &SQLStore{db: conn, dialect: dialect}, nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != db.DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT value FROM kv WHERE key = ?`), key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`), key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Del(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM kv WHERE key = ?`), key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT key FROM kv WHERE key LIKE ? ESCAPE '\' ORDER BY key`), likePattern(pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to list keys %s: %w", pattern, err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		// SQLite LIKE is case-insensitive; re-check exactly.
		if Match(pattern, key) {
			keys = append(keys, key)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate keys: %w", err)
	}
	return keys, nil
}

func (s *SQLStore) MGet(ctx context.Context, keys ...string) ([][]byte, error) {
	out := make([][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keys)), ",")
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(`SELECT key, value FROM kv WHERE key IN (`+placeholders+`)`), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to mget: %w", err)
	}
	defer rows.Close()

	found := make(map[string][]byte, len(keys))
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		found[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate values: %w", err)
	}

	for i, k := range keys {
		out[i] = found[k]
	}
	return out, nil
}

func (s *SQLStore) SetNX(ctx context.Context, key string, value []byte) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO NOTHING
	`), key, value)
	if err != nil {
		return false, fmt.Errorf("failed to setnx %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to setnx %s: %w", key, err)
	}
	return n == 1, nil
}

func (s *SQLStore) CompareAndSwap(ctx context.Context, key string, old, value []byte) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.rebind(`UPDATE kv SET value = ? WHERE key = ? AND value = ?`), value, key, old)
	if err != nil {
		return false, fmt.Errorf("failed to swap %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to swap %s: %w", key, err)
	}
	return n == 1, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// likePattern converts a glob to a LIKE pattern with '\' as escape.
func likePattern(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			b.WriteByte('%')
		case '?':
			b.WriteByte('_')
		case '%', '_', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Package sqlite provides the on-device persistent translation cache backed
// by SQLite (pure Go driver, no cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/heartmarshall/amistad-translator/internal/adapter/cachesql"
	"github.com/heartmarshall/amistad-translator/internal/cache"
	"github.com/heartmarshall/amistad-translator/internal/domain"
	"github.com/heartmarshall/amistad-translator/migrations"
)

// Store persists cache entries in a SQLite file.
type Store struct {
	db *sql.DB
	q  cachesql.Queries
}

var _ cache.Store = (*Store)(nil)

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := "file:" + filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, q: cachesql.New(squirrel.Question)}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the entry stored under key or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (cache.Entry, error) {
	query, args, err := s.q.Get(key)
	if err != nil {
		return cache.Entry{}, fmt.Errorf("build get: %w", err)
	}

	var (
		e      cache.Entry
		millis int64
	)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&e.Value, &millis)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cache.Entry{}, fmt.Errorf("cache key %q: %w", key, domain.ErrNotFound)
		}
		return cache.Entry{}, fmt.Errorf("get cache entry: %w", err)
	}
	e.InsertedAt = cachesql.FromMillis(millis)
	return e, nil
}

// Set inserts or replaces the entry under key.
func (s *Store) Set(ctx context.Context, key string, e cache.Entry) error {
	return s.exec(ctx, "set cache entry", func() (string, []any, error) {
		return s.q.Upsert(key, e.Value, e.InsertedAt)
	})
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.exec(ctx, "delete cache entry", func() (string, []any, error) {
		return s.q.Delete(key)
	})
}

// PurgeExpired deletes every entry inserted before olderThan and reports how
// many were removed.
func (s *Store) PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	query, args, err := s.q.Purge(olderThan)
	if err != nil {
		return 0, fmt.Errorf("build purge: %w", err)
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	return n, nil
}

// Count returns the number of stored entries, expired ones included.
func (s *Store) Count(ctx context.Context) (int64, error) {
	query, args, err := s.q.Count()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var n int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache: %w", err)
	}
	return n, nil
}

func (s *Store) exec(ctx context.Context, op string, build func() (string, []any, error)) error {
	query, args, err := build()
	if err != nil {
		return fmt.Errorf("build %s: %w", op, err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

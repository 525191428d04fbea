package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/heartmarshall/amistad-translator/internal/adapter/cachesql"
	"github.com/heartmarshall/amistad-translator/internal/cache"
)

const cacheEntity = "cache entry"

// CacheStore is the server-side persistent cache tier. It expects the
// translation_cache table created by Migrate.
type CacheStore struct {
	q  Querier
	sq cachesql.Queries
}

var _ cache.Store = (*CacheStore)(nil)

// NewCacheStore creates a store on top of a pool (or any Querier).
func NewCacheStore(q Querier) *CacheStore {
	return &CacheStore{q: q, sq: cachesql.New(squirrel.Dollar)}
}

// Get returns the entry stored under key. A missing key is domain.ErrNotFound.
func (s *CacheStore) Get(ctx context.Context, key string) (cache.Entry, error) {
	query, args, err := s.sq.Get(key)
	if err != nil {
		return cache.Entry{}, fmt.Errorf("build get: %w", err)
	}

	var (
		e      cache.Entry
		millis int64
	)
	if err := s.q.QueryRow(ctx, query, args...).Scan(&e.Value, &millis); err != nil {
		return cache.Entry{}, mapError(err, cacheEntity, key)
	}
	e.InsertedAt = cachesql.FromMillis(millis)
	return e, nil
}

// Set upserts the entry under key.
func (s *CacheStore) Set(ctx context.Context, key string, e cache.Entry) error {
	query, args, err := s.sq.Upsert(key, e.Value, e.InsertedAt)
	if err != nil {
		return fmt.Errorf("build set: %w", err)
	}
	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, cacheEntity, key)
	}
	return nil
}

func (s *CacheStore) Delete(ctx context.Context, key string) error {
	query, args, err := s.sq.Delete(key)
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, cacheEntity, key)
	}
	return nil
}

// PurgeExpired deletes every entry inserted before olderThan.
func (s *CacheStore) PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	query, args, err := s.sq.Purge(olderThan)
	if err != nil {
		return 0, fmt.Errorf("build purge: %w", err)
	}
	tag, err := s.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("purge cache: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *CacheStore) Count(ctx context.Context) (int64, error) {
	query, args, err := s.sq.Count()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var n int64
	if err := s.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cache: %w", err)
	}
	return n, nil
}

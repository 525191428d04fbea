package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UniqueKey returns a cache key that does not collide with other tests
// sharing the container.
func UniqueKey(prefix string) string {
	return prefix + ":" + uuid.New().String()[:8]
}

// SeedCacheEntry inserts a translation_cache row directly, bypassing the
// store under test.
func SeedCacheEntry(t *testing.T, pool *pgxpool.Pool, key, value string, insertedAt time.Time) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO translation_cache (cache_key, value, inserted_at) VALUES ($1, $2, $3)`,
		key, value, insertedAt.UTC().UnixMilli(),
	)
	if err != nil {
		t.Fatalf("testhelper: seed cache entry %q: %v", key, err)
	}
}

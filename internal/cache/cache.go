package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/amistad-translator/internal/domain"
)

// DefaultTTL is how long a translation stays valid.
const DefaultTTL = 60 * 24 * time.Hour

// Tier names as reported to metrics.
const (
	tierMemory = "memory"
	tierStore  = "store"
)

// Entry is a cached translation.
type Entry struct {
	Value      string
	InsertedAt time.Time
}

// Expired reports whether the entry is older than ttl at now. A non-positive
// ttl never expires.
func (e Entry) Expired(now time.Time, ttl time.Duration) bool {
	return ttl > 0 && now.Sub(e.InsertedAt) > ttl
}

// Store is the persistent tier. Get returns domain.ErrNotFound on a miss.
type Store interface {
	Get(ctx context.Context, key string) (Entry, error)
	Set(ctx context.Context, key string, e Entry) error
	Delete(ctx context.Context, key string) error
	PurgeExpired(ctx context.Context, olderThan time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type recorder interface {
	RecordCacheLookup(tier, result string)
	RecordCacheStoreError()
}

// Key builds the cache key of a translation: "{from}:{to}:{text}" with the
// text normalized, so casing, spacing and typographic variants share an
// entry.
func Key(from, to domain.Language, text string) string {
	return from.Normalize().String() + ":" + to.Normalize().String() + ":" + domain.NormalizeText(text)
}

// Cache is a two-tier cache: a process-lifetime map in front of an optional
// persistent Store. Both tiers honor the TTL; stale entries are removed when
// read. Store failures are logged and treated as misses.
type Cache struct {
	mu  sync.RWMutex
	mem map[string]Entry

	store   Store
	ttl     time.Duration
	now     func() time.Time
	log     *slog.Logger
	metrics recorder
}

// New creates a cache. store may be nil for a memory-only cache, metrics
// may be nil.
func New(logger *slog.Logger, store Store, ttl time.Duration, metrics recorder) *Cache {
	return NewWithClock(logger, store, ttl, metrics, time.Now)
}

// NewWithClock is New with an explicit clock.
func NewWithClock(logger *slog.Logger, store Store, ttl time.Duration, metrics recorder, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		mem:     make(map[string]Entry),
		store:   store,
		ttl:     ttl,
		now:     now,
		log:     logger.With("component", "cache"),
		metrics: metrics,
	}
}

// TTL returns the configured time to live.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get returns the cached value for key. A fresh hit in the store is promoted
// into memory.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	now := c.now()

	c.mu.RLock()
	e, ok := c.mem[key]
	c.mu.RUnlock()
	if ok {
		if !e.Expired(now, c.ttl) {
			c.record(tierMemory, "hit")
			return e.Value, true
		}
		c.mu.Lock()
		if cur, ok := c.mem[key]; ok && cur.Expired(now, c.ttl) {
			delete(c.mem, key)
		}
		c.mu.Unlock()
		c.record(tierMemory, "expired")
	} else {
		c.record(tierMemory, "miss")
	}

	if c.store == nil {
		return "", false
	}

	e, err := c.store.Get(ctx, key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.record(tierStore, "miss")
		return "", false
	case err != nil:
		c.storeError(ctx, "get", key, err)
		return "", false
	}

	if e.Expired(now, c.ttl) {
		c.record(tierStore, "expired")
		if err := c.store.Delete(ctx, key); err != nil {
			c.storeError(ctx, "delete", key, err)
		}
		return "", false
	}

	c.record(tierStore, "hit")
	c.mu.Lock()
	c.mem[key] = e
	c.mu.Unlock()
	return e.Value, true
}

// Set stores value under key in both tiers.
func (c *Cache) Set(ctx context.Context, key, value string) {
	e := Entry{Value: value, InsertedAt: c.now()}

	c.mu.Lock()
	c.mem[key] = e
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err := c.store.Set(ctx, key, e); err != nil {
		c.storeError(ctx, "set", key, err)
	}
}

// Len returns the number of entries in the memory tier.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.mem)
}

// PurgeExpired drops expired entries from both tiers and returns how many
// were removed from the store.
func (c *Cache) PurgeExpired(ctx context.Context) (int64, error) {
	now := c.now()

	c.mu.Lock()
	for k, e := range c.mem {
		if e.Expired(now, c.ttl) {
			delete(c.mem, k)
		}
	}
	c.mu.Unlock()

	if c.store == nil {
		return 0, nil
	}
	return c.store.PurgeExpired(ctx, now.Add(-c.ttl))
}

func (c *Cache) record(tier, result string) {
	if c.metrics != nil {
		c.metrics.RecordCacheLookup(tier, result)
	}
}

func (c *Cache) storeError(ctx context.Context, op, key string, err error) {
	if c.metrics != nil {
		c.metrics.RecordCacheStoreError()
	}
	c.log.WarnContext(ctx, "cache store failed",
		slog.String("op", op),
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}

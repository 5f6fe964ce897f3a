// Package cache stores API responses in the local store and drops them when a
// mutation publishes an event naming their tags.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/julianstephens/pact/internal/logger"
	"github.com/julianstephens/pact/internal/storage"
)

// Store is the subset of storage.Provider the cache needs.
type Store interface {
	GetCacheEntry(key string) (storage.CacheEntry, error)
	PutCacheEntry(storage.CacheEntry) error
	InvalidateTags(tags ...string) (int, error)
	ClearCache() (int, error)
}

type Cache struct {
	store Store
	now   func() time.Time
}

type Option func(*Cache)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

func New(store Store, opts ...Option) *Cache {
	c := &Cache{store: store, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the cached value for key while it is fresh, otherwise calls fn
// and stores its result under tags for ttl. Failures of the cache itself are
// logged and never hide a successful fetch. A nil cache always calls fn.
func Fetch[T any](ctx context.Context, c *Cache, key string, tags []string, ttl time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if c == nil || c.store == nil {
		return fn(ctx)
	}

	now := c.now()
	entry, err := c.store.GetCacheEntry(key)
	switch {
	case err == nil && entry.Fresh(now):
		var v T
		if err := json.Unmarshal(entry.Body, &v); err == nil {
			logger.Debug("cache hit", "key", key)
			return v, nil
		}
		logger.Warn("Discarding unreadable cache entry", "key", key)
	case err != nil && !errors.Is(err, storage.ErrNotFound):
		logger.Warn("Cache read failed", "key", key, "error", err)
	}

	v, err := fn(ctx)
	if err != nil {
		return v, err
	}

	body, err := json.Marshal(v)
	if err != nil {
		logger.Warn("Cache encode failed", "key", key, "error", err)
		return v, nil
	}
	err = c.store.PutCacheEntry(storage.CacheEntry{
		Key:       key,
		Body:      body,
		Tags:      tags,
		StoredAt:  now,
		ExpiresAt: now.Add(ttl),
	})
	if err != nil {
		logger.Warn("Cache write failed", "key", key, "error", err)
	}
	return v, nil
}

// Publish drops every entry tagged by the event.
func (c *Cache) Publish(event Event) error {
	if c == nil || c.store == nil {
		return nil
	}
	n, err := c.store.InvalidateTags(event.Tags()...)
	if err != nil {
		return err
	}
	logger.Debug("cache invalidated", "event", eventName(event), "entries", n)
	return nil
}

// Clear drops every cached response.
func (c *Cache) Clear() (int, error) {
	if c == nil || c.store == nil {
		return 0, nil
	}
	return c.store.ClearCache()
}

func eventName(e Event) string {
	switch e.(type) {
	case PactCreated:
		return "pact_created"
	case ActivityCreated:
		return "activity_created"
	case LogCreated:
		return "log_created"
	case PactJoined:
		return "pact_joined"
	case UserChanged:
		return "user_changed"
	default:
		return "unknown"
	}
}

package storage

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// ErrNotFound is returned when a state key or cache entry does not exist.
var ErrNotFound = errors.New("not found")

// ErrNotInitialized is returned by Load when the store was never created.
var ErrNotInitialized = errors.New("storage not initialized, run 'pact init' first")

// CacheEntry is one cached API response body together with the tags that
// invalidate it.
type CacheEntry struct {
	Key       string
	Body      []byte
	Tags      []string
	StoredAt  time.Time
	ExpiresAt time.Time
}

// Fresh reports whether the entry may still be served at now.
func (e CacheEntry) Fresh(now time.Time) bool {
	return now.Before(e.ExpiresAt)
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Client state (persisted identity and current pact)
	GetState(key string) (string, error)
	SetState(key, value string) error
	DeleteState(keys ...string) error

	// Response cache
	GetCacheEntry(key string) (CacheEntry, error)
	PutCacheEntry(CacheEntry) error
	// InvalidateTags deletes every entry carrying any of the tags and
	// returns how many entries were removed.
	InvalidateTags(tags ...string) (int, error)
	ClearCache() (int, error)

	// Schema
	SchemaVersion() (current, latest int, err error)
	// Migrate applies pending migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)

	// Utils
	GetConfigPath() string
}

// IsPostgres reports whether configPath is a PostgreSQL connection URL.
func IsPostgres(configPath string) bool {
	return strings.HasPrefix(configPath, "postgres://") || strings.HasPrefix(configPath, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL URL carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return false
	}
	_, ok := u.User.Password()
	return ok
}

package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/julianstephens/pact/internal/storage"
)

func (s *Store) GetCacheEntry(key string) (storage.CacheEntry, error) {
	var entry storage.CacheEntry
	err := s.db.QueryRow(`
		SELECT e.key, e.body, e.stored_at, e.expires_at,
		       COALESCE(array_agg(t.tag ORDER BY t.tag) FILTER (WHERE t.tag IS NOT NULL), '{}')
		FROM cache_entries e
		LEFT JOIN cache_tags t ON t.key = e.key
		WHERE e.key = $1
		GROUP BY e.key
	`, key).Scan(&entry.Key, &entry.Body, &entry.StoredAt, &entry.ExpiresAt, pq.Array(&entry.Tags))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.CacheEntry{}, storage.ErrNotFound
		}
		return storage.CacheEntry{}, fmt.Errorf("failed to read cache entry %q: %w", key, err)
	}
	return entry, nil
}

func (s *Store) PutCacheEntry(entry storage.CacheEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO cache_entries (key, body, stored_at, expires_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET body = EXCLUDED.body, stored_at = EXCLUDED.stored_at, expires_at = EXCLUDED.expires_at
	`, entry.Key, entry.Body, entry.StoredAt.UTC(), entry.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to write cache entry %q: %w", entry.Key, err)
	}
	if _, err := tx.Exec("DELETE FROM cache_tags WHERE key = $1", entry.Key); err != nil {
		return fmt.Errorf("failed to reset cache tags: %w", err)
	}
	if len(entry.Tags) > 0 {
		_, err = tx.Exec(`
			INSERT INTO cache_tags (key, tag)
			SELECT $1, unnest($2::text[])
			ON CONFLICT DO NOTHING
		`, entry.Key, pq.Array(entry.Tags))
		if err != nil {
			return fmt.Errorf("failed to tag cache entry %q: %w", entry.Key, err)
		}
	}
	return tx.Commit()
}

func (s *Store) InvalidateTags(tags ...string) (int, error) {
	if len(tags) == 0 {
		return 0, nil
	}
	res, err := s.db.Exec(`
		DELETE FROM cache_entries
		WHERE key IN (SELECT key FROM cache_tags WHERE tag = ANY($1))
	`, pq.Array(tags))
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate cache: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *Store) ClearCache() (int, error) {
	res, err := s.db.Exec("DELETE FROM cache_entries")
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

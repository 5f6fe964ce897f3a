package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/pact/internal/storage"
)

const timeLayout = time.RFC3339Nano

func (s *Store) GetCacheEntry(key string) (storage.CacheEntry, error) {
	var (
		entry              storage.CacheEntry
		storedAt, expireAt string
	)
	err := s.db.QueryRow(
		"SELECT key, body, stored_at, expires_at FROM cache_entries WHERE key = ?", key,
	).Scan(&entry.Key, &entry.Body, &storedAt, &expireAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.CacheEntry{}, storage.ErrNotFound
		}
		return storage.CacheEntry{}, fmt.Errorf("failed to read cache entry %q: %w", key, err)
	}

	if entry.StoredAt, err = time.Parse(timeLayout, storedAt); err != nil {
		return storage.CacheEntry{}, fmt.Errorf("corrupt stored_at for %q: %w", key, err)
	}
	if entry.ExpiresAt, err = time.Parse(timeLayout, expireAt); err != nil {
		return storage.CacheEntry{}, fmt.Errorf("corrupt expires_at for %q: %w", key, err)
	}

	rows, err := s.db.Query("SELECT tag FROM cache_tags WHERE key = ? ORDER BY tag", key)
	if err != nil {
		return storage.CacheEntry{}, fmt.Errorf("failed to read cache tags for %q: %w", key, err)
	}
	defer rows.Close()
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return storage.CacheEntry{}, err
		}
		entry.Tags = append(entry.Tags, tag)
	}
	return entry, rows.Err()
}

func (s *Store) PutCacheEntry(entry storage.CacheEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cache_tags WHERE key = ?", entry.Key); err != nil {
		return fmt.Errorf("failed to reset cache tags: %w", err)
	}
	_, err = tx.Exec(`
		INSERT INTO cache_entries (key, body, stored_at, expires_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, stored_at = excluded.stored_at, expires_at = excluded.expires_at
	`, entry.Key, entry.Body, entry.StoredAt.UTC().Format(timeLayout), entry.ExpiresAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("failed to write cache entry %q: %w", entry.Key, err)
	}

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO cache_tags (key, tag) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, tag := range entry.Tags {
		if _, err := stmt.Exec(entry.Key, tag); err != nil {
			return fmt.Errorf("failed to tag cache entry %q: %w", entry.Key, err)
		}
	}

	return tx.Commit()
}

func (s *Store) InvalidateTags(tags ...string) (int, error) {
	if len(tags) == 0 {
		return 0, nil
	}
	args := make([]any, len(tags))
	for i, t := range tags {
		args[i] = t
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(tags)), ",")

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	keys := "SELECT DISTINCT key FROM cache_tags WHERE tag IN (" + placeholders + ")"
	res, err := tx.Exec("DELETE FROM cache_entries WHERE key IN ("+keys+")", args...)
	if err != nil {
		return 0, fmt.Errorf("failed to invalidate cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec("DELETE FROM cache_tags WHERE key NOT IN (SELECT key FROM cache_entries)"); err != nil {
		return 0, fmt.Errorf("failed to prune cache tags: %w", err)
	}
	return int(n), tx.Commit()
}

func (s *Store) ClearCache() (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM cache_tags"); err != nil {
		return 0, fmt.Errorf("failed to clear cache tags: %w", err)
	}
	res, err := tx.Exec("DELETE FROM cache_entries")
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), tx.Commit()
}

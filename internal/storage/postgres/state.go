package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/pact/internal/storage"
)

func (s *Store) GetState(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM client_state WHERE key = $1", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("failed to read state %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetState(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO client_state (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write state %q: %w", key, err)
	}
	return nil
}

func (s *Store) DeleteState(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := s.db.Exec("DELETE FROM client_state WHERE key = ANY($1)", pq.Array(keys)); err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}

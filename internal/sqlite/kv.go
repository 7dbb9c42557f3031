package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexjean/devify/internal/tracker"
)

// KVStore implements tracker.Store on the kv table.
type KVStore struct {
	db *DB
}

func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

func (s *KVStore) Get(ctx context.Context, namespace, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE namespace = ? AND key = ?`,
		namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", tracker.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s/%s: %w", namespace, key, err)
	}
	return value, nil
}

// Put overwrites the value in a single statement.
func (s *KVStore) Put(ctx context.Context, namespace, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, namespace, key, value)
	if err != nil {
		return fmt.Errorf("write %s/%s: %w", namespace, key, err)
	}
	return nil
}

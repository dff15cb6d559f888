package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// RememberedUserKey is the app_state key holding the remembered user id.
const RememberedUserKey = "remembered_user"

// stateRepo implements StateRepo on the SQLite store.
type stateRepo struct {
	db *sql.DB
}

func (r *stateRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("query state: %w", err)
	}
	return value, nil
}

func (r *stateRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("set state: %w", err)
	}
	return nil
}

func (r *stateRepo) Clear(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}

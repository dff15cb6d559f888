package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/cyberedu/internal/account"
)

// progressRepo implements ProgressRepo on the SQLite store.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Get(ctx context.Context, userID, moduleID string) (float64, error) {
	var percent float64
	err := r.db.QueryRowContext(ctx,
		`SELECT percent FROM module_progress WHERE user_id = ? AND module_id = ?`,
		userID, moduleID).Scan(&percent)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("query progress: %w", err)
	}
	return percent, nil
}

func (r *progressRepo) Upsert(ctx context.Context, userID, moduleID string, percent float64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO module_progress (user_id, module_id, percent, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, module_id) DO UPDATE SET
			percent = excluded.percent,
			updated_at = excluded.updated_at`,
		userID, moduleID, percent, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *progressRepo) ForUser(ctx context.Context, userID string) ([]account.ModuleProgress, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT module_id, percent FROM module_progress
		 WHERE user_id = ? ORDER BY module_id`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("query user progress: %w", err)
	}
	defer rows.Close()

	var list []account.ModuleProgress
	for rows.Next() {
		var mp account.ModuleProgress
		if err := rows.Scan(&mp.ModuleID, &mp.Percent); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		list = append(list, mp)
	}
	return list, rows.Err()
}

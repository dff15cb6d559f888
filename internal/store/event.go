package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// eventRepo implements EventRepo on the SQLite store. Events are
// append-only; AUTOINCREMENT guarantees sequence numbers are never reused
// even after deletes, so ordering stays stable across the log's lifetime.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) Append(ctx context.Context, kind, userID, detail string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (at, kind, user_id, detail) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), kind, userID, detail)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func (r *eventRepo) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, at, kind, user_id, detail FROM events
		 ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e  Event
			at string
		)
		if err := rows.Scan(&e.Seq, &at, &e.Kind, &e.UserID, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339Nano, at); perr == nil {
			e.At = t
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

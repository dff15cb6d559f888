package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/cyberedu/internal/account"
)

// userRepo implements UserRepo on the SQLite store.
type userRepo struct {
	db *sql.DB
}

const userColumns = "id, display_name, email, password_hash, cohort, age, settings_json, created_at"

func (r *userRepo) FindByIdentity(ctx context.Context, identity string) (*account.UserRecord, error) {
	identity = strings.TrimSpace(identity)
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE email = ? COLLATE NOCASE OR display_name = ? COLLATE NOCASE`,
		identity, identity)
	return scanUser(row)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*account.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *userRepo) Add(ctx context.Context, rec *account.UserRecord) error {
	// Pre-check both identity fields so the caller gets ErrDuplicateIdentity
	// rather than a driver-specific constraint error. The NOCASE unique
	// indexes still back this up at the database level.
	if _, err := r.FindByIdentity(ctx, rec.Email); err == nil {
		return ErrDuplicateIdentity
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	if _, err := r.FindByIdentity(ctx, rec.DisplayName); err == nil {
		return ErrDuplicateIdentity
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	settings, err := json.Marshal(rec.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.DisplayName,
		rec.Email,
		rec.PasswordHash,
		string(rec.Cohort),
		rec.Age,
		string(settings),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateIdentity
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, rec *account.UserRecord) error {
	settings, err := json.Marshal(rec.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET display_name = ?, email = ?, password_hash = ?,
		 cohort = ?, age = ?, settings_json = ? WHERE id = ?`,
		rec.DisplayName,
		rec.Email,
		rec.PasswordHash,
		string(rec.Cohort),
		rec.Age,
		string(settings),
		rec.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateIdentity
		}
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepo) All(ctx context.Context) ([]*account.UserRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []*account.UserRecord
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*account.UserRecord, error) {
	var (
		rec       account.UserRecord
		cohort    string
		settings  string
		createdAt string
	)
	err := row.Scan(
		&rec.ID,
		&rec.DisplayName,
		&rec.Email,
		&rec.PasswordHash,
		&cohort,
		&rec.Age,
		&settings,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	rec.Cohort = account.Cohort(cohort)
	if err := json.Unmarshal([]byte(settings), &rec.Settings); err != nil {
		// A mangled settings blob should not make the account unreadable.
		rec.Settings = account.DefaultSettings()
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

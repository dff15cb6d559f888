package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/cyberedu/internal/account"
)

// ErrNotFound is returned when no record matches the given identity or id.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateIdentity is returned when an insert would collide with an
// existing email or display name (compared case-insensitively).
var ErrDuplicateIdentity = errors.New("email or display name already registered")

// UserRepo manages persisted user records (the credential store).
type UserRepo interface {
	// FindByIdentity looks a record up by display name or email,
	// case-insensitively. Returns ErrNotFound when absent.
	FindByIdentity(ctx context.Context, identity string) (*account.UserRecord, error)

	// GetByID returns the record with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*account.UserRecord, error)

	// Add inserts a new record. Returns ErrDuplicateIdentity if the email
	// or display name is already present.
	Add(ctx context.Context, rec *account.UserRecord) error

	// Update replaces the record sharing the same id. Returns ErrNotFound
	// if no such record exists.
	Update(ctx context.Context, rec *account.UserRecord) error

	// Delete removes the record and its progress rows. Returns ErrNotFound
	// if no such record exists.
	Delete(ctx context.Context, id string) error

	// All returns every stored record ordered by creation time.
	All(ctx context.Context) ([]*account.UserRecord, error)
}

// ProgressRepo manages per-(user, module) completion percentages.
type ProgressRepo interface {
	// Get returns the stored percentage, or ErrNotFound when the pair has
	// never been written.
	Get(ctx context.Context, userID, moduleID string) (float64, error)

	// Upsert creates or replaces the percentage for the pair. The write is
	// synchronous; when it returns, the value is durable.
	Upsert(ctx context.Context, userID, moduleID string, percent float64) error

	// ForUser returns all module percentages recorded for the user.
	ForUser(ctx context.Context, userID string) ([]account.ModuleProgress, error)
}

// StateRepo holds small singleton values such as the remembered-session
// pointer.
type StateRepo interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores the value for key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Clear removes the key. Clearing an absent key is not an error.
	Clear(ctx context.Context, key string) error
}

// Event is one appended audit record.
type Event struct {
	Seq    int64
	At     time.Time
	Kind   string
	UserID string
	Detail string
}

// Audit event kinds.
const (
	EventRegister       = "register"
	EventLogin          = "login"
	EventLoginFailed    = "login_failed"
	EventLogout         = "logout"
	EventSessionRestore = "session_restore"
	EventProgressUpdate = "progress_update"
	EventReportExport   = "report_export"
)

// EventRepo provides append and query access to the audit log. It replaces
// the rotating text log of earlier builds with a durable table.
type EventRepo interface {
	// Append records an event. Failures should be logged and swallowed by
	// callers; auditing never blocks the user-facing operation.
	Append(ctx context.Context, kind, userID, detail string) error

	// Recent returns up to limit events, newest first.
	Recent(ctx context.Context, limit int) ([]Event, error)
}

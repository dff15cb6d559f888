// Package session owns the login state machine: at most one active user
// per process, set by registration, authentication, or a remembered
// session restored at startup.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/cyberedu/internal/account"
	"github.com/abhisek/cyberedu/internal/store"
)

// State is the session machine state.
type State int

const (
	// LoggedOut means no user is active.
	LoggedOut State = iota
	// LoggedIn means exactly one user is active.
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged-in"
	}
	return "logged-out"
}

// ErrBadCredentials is returned when the password hash does not match the
// stored one.
var ErrBadCredentials = errors.New("incorrect password")

// ErrNoActiveUser is returned when an operation requires a session and
// none is active.
var ErrNoActiveUser = errors.New("no active user")

// Manager wraps the credential store and tracks the active user. All
// other components read the active identity through it.
type Manager struct {
	users    store.UserRepo
	progress store.ProgressRepo
	state    store.StateRepo
	events   store.EventRepo
	log      *zap.Logger

	current *account.UserRecord
}

// NewManager constructs a Manager. The logger may be nil.
func NewManager(users store.UserRepo, progress store.ProgressRepo, state store.StateRepo, events store.EventRepo, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		users:    users,
		progress: progress,
		state:    state,
		events:   events,
		log:      log,
	}
}

// State returns the current machine state.
func (m *Manager) State() State {
	if m.current != nil {
		return LoggedIn
	}
	return LoggedOut
}

// Current returns the active user record, or nil when logged out.
func (m *Manager) Current() *account.UserRecord {
	return m.current
}

// Register validates the input, creates the account, seeds baseline module
// progress at 0%, and transitions to LoggedIn as the new identity.
// Returns *account.ValidationError or store.ErrDuplicateIdentity on
// failure.
func (m *Manager) Register(ctx context.Context, in account.RegisterInput) (*account.UserRecord, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	rec := &account.UserRecord{
		ID:           uuid.NewString(),
		DisplayName:  strings.TrimSpace(in.DisplayName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: account.HashPassword(in.Password),
		Cohort:       in.Cohort,
		Age:          in.Age,
		Settings:     account.DefaultSettings(),
		CreatedAt:    time.Now().UTC(),
	}

	if err := m.users.Add(ctx, rec); err != nil {
		return nil, err
	}

	// Seed every baseline module at 0% so progress screens have a row to
	// show before the user touches a module. A failure partway undoes the
	// account insert so a retry starts from a clean slate; the delete
	// cascades any progress rows already written.
	for _, moduleID := range account.BaselineModules {
		if err := m.progress.Upsert(ctx, rec.ID, moduleID, 0); err != nil {
			if derr := m.users.Delete(ctx, rec.ID); derr != nil {
				m.log.Warn("undo failed registration", zap.String("user_id", rec.ID), zap.Error(derr))
			}
			return nil, fmt.Errorf("seed progress for %s: %w", moduleID, err)
		}
	}

	m.current = rec
	m.audit(ctx, store.EventRegister, rec.ID, rec.DisplayName)
	m.log.Info("user registered",
		zap.String("user_id", rec.ID),
		zap.String("display_name", rec.DisplayName),
		zap.String("cohort", string(rec.Cohort)))
	return rec, nil
}

// Authenticate looks the identity up by display name or email and checks
// the password. On success it transitions to LoggedIn; when remember is
// set it persists a pointer to this identity that survives restarts,
// otherwise it clears any such pointer.
func (m *Manager) Authenticate(ctx context.Context, identity, rawPassword string, remember bool) (*account.UserRecord, error) {
	rec, err := m.users.FindByIdentity(ctx, identity)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			m.audit(ctx, store.EventLoginFailed, "", "unknown identity: "+identity)
		}
		return nil, err
	}

	if !account.CheckPassword(rawPassword, rec.PasswordHash) {
		m.audit(ctx, store.EventLoginFailed, rec.ID, "password mismatch")
		return nil, ErrBadCredentials
	}

	m.current = rec

	if remember {
		if err := m.state.Set(ctx, store.RememberedUserKey, rec.ID); err != nil {
			m.log.Warn("persist remember pointer", zap.Error(err))
		}
	} else {
		if err := m.state.Clear(ctx, store.RememberedUserKey); err != nil {
			m.log.Warn("clear remember pointer", zap.Error(err))
		}
	}

	m.audit(ctx, store.EventLogin, rec.ID, rec.DisplayName)
	m.log.Info("user authenticated", zap.String("user_id", rec.ID), zap.Bool("remember", remember))
	return rec, nil
}

// Logout transitions LoggedIn -> LoggedOut and clears the persisted
// remember pointer. Returns ErrNoActiveUser when already logged out.
func (m *Manager) Logout(ctx context.Context) error {
	if m.current == nil {
		return ErrNoActiveUser
	}

	id := m.current.ID
	name := m.current.DisplayName
	m.current = nil

	if err := m.state.Clear(ctx, store.RememberedUserKey); err != nil {
		m.log.Warn("clear remember pointer", zap.Error(err))
	}
	m.audit(ctx, store.EventLogout, id, name)
	m.log.Info("user logged out", zap.String("user_id", id))
	return nil
}

// Restore resolves the persisted remember pointer at startup. When the
// pointer resolves to a valid record the machine starts LoggedIn as that
// user; a stale pointer (record missing) is cleared and the machine stays
// LoggedOut. A missing pointer is not an error.
func (m *Manager) Restore(ctx context.Context) (*account.UserRecord, error) {
	id, err := m.state.Get(ctx, store.RememberedUserKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	rec, err := m.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Stale pointer: the remembered record no longer exists.
			if cerr := m.state.Clear(ctx, store.RememberedUserKey); cerr != nil {
				m.log.Warn("clear stale remember pointer", zap.Error(cerr))
			}
			m.log.Info("stale remember pointer cleared", zap.String("user_id", id))
			return nil, nil
		}
		return nil, err
	}

	m.current = rec
	m.audit(ctx, store.EventSessionRestore, rec.ID, rec.DisplayName)
	m.log.Info("session restored", zap.String("user_id", rec.ID))
	return rec, nil
}

// UpdateSettings persists new settings for the active user.
func (m *Manager) UpdateSettings(ctx context.Context, settings account.Settings) error {
	if m.current == nil {
		return ErrNoActiveUser
	}
	m.current.Settings = settings
	return m.users.Update(ctx, m.current)
}

// DeleteAccount removes the active user's record and logs out. The record
// and its progress rows are gone after this returns.
func (m *Manager) DeleteAccount(ctx context.Context) error {
	if m.current == nil {
		return ErrNoActiveUser
	}
	id := m.current.ID
	if err := m.users.Delete(ctx, id); err != nil {
		return err
	}
	m.current = nil
	if err := m.state.Clear(ctx, store.RememberedUserKey); err != nil {
		m.log.Warn("clear remember pointer", zap.Error(err))
	}
	return nil
}

// audit appends an event, logging and swallowing failures: auditing never
// blocks the user-facing operation.
func (m *Manager) audit(ctx context.Context, kind, userID, detail string) {
	if m.events == nil {
		return
	}
	if err := m.events.Append(ctx, kind, userID, detail); err != nil {
		m.log.Warn("append audit event", zap.String("kind", kind), zap.Error(err))
	}
}

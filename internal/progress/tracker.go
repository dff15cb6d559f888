// Package progress tracks per-(user, module) completion percentages with
// synchronous write-through persistence.
package progress

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/cyberedu/internal/account"
	"github.com/abhisek/cyberedu/internal/store"
)

// Tracker is a clamped percentage store keyed by (user, module). It does
// not enforce monotonicity; callers that treat 100% as terminal enforce
// that at their own call sites.
type Tracker struct {
	repo   store.ProgressRepo
	events store.EventRepo
	log    *zap.Logger
}

// NewTracker constructs a Tracker. Events and logger may be nil.
func NewTracker(repo store.ProgressRepo, events store.EventRepo, log *zap.Logger) *Tracker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Tracker{repo: repo, events: events, log: log}
}

// Get returns the persisted percentage for (userID, moduleID), or def if
// none has been written yet.
func (t *Tracker) Get(ctx context.Context, userID, moduleID string, def float64) (float64, error) {
	p, err := t.repo.Get(ctx, userID, moduleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return def, nil
		}
		return 0, err
	}
	return p, nil
}

// Set clamps percent to [0,100] and persists it immediately, creating the
// entry if absent. Returns the clamped value actually stored.
func (t *Tracker) Set(ctx context.Context, userID, moduleID string, percent float64) (float64, error) {
	clamped := Clamp(percent)
	if err := t.repo.Upsert(ctx, userID, moduleID, clamped); err != nil {
		return 0, err
	}

	if t.events != nil {
		detail := fmt.Sprintf("%s -> %.0f%%", moduleID, clamped)
		if err := t.events.Append(ctx, store.EventProgressUpdate, userID, detail); err != nil {
			t.log.Warn("append progress event", zap.Error(err))
		}
	}
	t.log.Debug("progress updated",
		zap.String("user_id", userID),
		zap.String("module_id", moduleID),
		zap.Float64("percent", clamped))
	return clamped, nil
}

// Add bumps the stored percentage by delta (which may be negative) and
// persists the clamped result.
func (t *Tracker) Add(ctx context.Context, userID, moduleID string, delta float64) (float64, error) {
	current, err := t.Get(ctx, userID, moduleID, 0)
	if err != nil {
		return 0, err
	}
	return t.Set(ctx, userID, moduleID, current+delta)
}

// ForUser returns every module percentage recorded for the user.
func (t *Tracker) ForUser(ctx context.Context, userID string) ([]account.ModuleProgress, error) {
	return t.repo.ForUser(ctx, userID)
}

// Clamp restricts p to the [0,100] range.
func Clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

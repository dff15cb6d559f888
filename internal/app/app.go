// Package app wires the store, services, and configuration into one
// explicitly constructed object passed to the command layer. No global
// mutable state: everything is created once at process start and torn
// down at exit.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/cyberedu/internal/config"
	"github.com/abhisek/cyberedu/internal/progress"
	"github.com/abhisek/cyberedu/internal/report"
	"github.com/abhisek/cyberedu/internal/session"
	"github.com/abhisek/cyberedu/internal/store"
)

// App bundles the constructed services.
type App struct {
	Config  *config.Config
	Log     *zap.Logger
	Store   *store.Store
	Session *session.Manager
	Tracker *progress.Tracker
	Reports *report.Aggregator
}

// New opens the store and constructs all services. dbPath overrides the
// configured database path when non-empty (the --db flag).
func New(cfg *config.Config, log *zap.Logger, dbPath string) (*App, error) {
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		dbPath = p
	} else if err := store.EnsureDir(dbPath); err != nil {
		return nil, fmt.Errorf("ensure DB dir: %w", err)
	}

	st, err := store.OpenOrReset(dbPath, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	return &App{
		Config:  cfg,
		Log:     log,
		Store:   st,
		Session: session.NewManager(st.UserRepo(), st.ProgressRepo(), st.StateRepo(), st.EventRepo(), log),
		Tracker: progress.NewTracker(st.ProgressRepo(), st.EventRepo(), log),
		Reports: report.NewAggregator(cfg.ReportDir, cfg.ReportPrefix),
	}, nil
}

// Restore resolves a remembered session, if any.
func (a *App) Restore(ctx context.Context) error {
	_, err := a.Session.Restore(ctx)
	return err
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

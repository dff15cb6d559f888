package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Env != "local" {
		t.Errorf("env = %q, want local", cfg.Env)
	}
	if cfg.ReportPrefix != "cyberedu_report" {
		t.Errorf("report prefix = %q", cfg.ReportPrefix)
	}
	if cfg.QuizPolicy != "retry" {
		t.Errorf("quiz policy = %q, want retry", cfg.QuizPolicy)
	}
	if cfg.ReportDir == "" {
		t.Error("report dir not resolved")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CYBEREDU_QUIZ_POLICY", "advance")
	t.Setenv("CYBEREDU_REPORT_DIR", "/tmp/reports")
	t.Setenv("CYBEREDU_DB_PATH", "/tmp/edu.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.QuizPolicy != "advance" {
		t.Errorf("quiz policy = %q, want advance", cfg.QuizPolicy)
	}
	if cfg.ReportDir != "/tmp/reports" {
		t.Errorf("report dir = %q", cfg.ReportDir)
	}
	if cfg.DBPath != "/tmp/edu.db" {
		t.Errorf("db path = %q", cfg.DBPath)
	}
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	t.Setenv("CYBEREDU_QUIZ_POLICY", "sometimes")
	if _, err := Load(); err == nil {
		t.Error("expected error for unknown policy")
	}
}

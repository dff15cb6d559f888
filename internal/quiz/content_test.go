package quiz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/cyberedu/internal/account"
)

const validQuizJSON = `{
	"module_id": "phishing",
	"phases": [
		{
			"name": "basics",
			"questions": [
				{
					"prompt": "Is this safe?",
					"options": ["yes", "no"],
					"correct_index": 1
				}
			]
		}
	]
}`

func TestParseValid(t *testing.T) {
	q, err := Parse([]byte(validQuizJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.ModuleID != "phishing" {
		t.Errorf("module = %q", q.ModuleID)
	}
	if len(q.Phases) != 1 || len(q.Phases[0].Questions) != 1 {
		t.Errorf("shape = %d phases", len(q.Phases))
	}
	if q.Phases[0].Questions[0].CorrectIndex != 1 {
		t.Errorf("correct index = %d", q.Phases[0].Questions[0].CorrectIndex)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{{{`},
		{"missing module_id", `{"phases": [{"name": "x", "questions": [{"prompt": "p", "options": ["a"], "correct_index": 0}]}]}`},
		{"empty phases", `{"module_id": "m", "phases": []}`},
		{"empty questions", `{"module_id": "m", "phases": [{"name": "x", "questions": []}]}`},
		{"empty options", `{"module_id": "m", "phases": [{"name": "x", "questions": [{"prompt": "p", "options": [], "correct_index": 0}]}]}`},
		{"negative correct index", `{"module_id": "m", "phases": [{"name": "x", "questions": [{"prompt": "p", "options": ["a"], "correct_index": -1}]}]}`},
		{"correct index past options", `{"module_id": "m", "phases": [{"name": "x", "questions": [{"prompt": "p", "options": ["a", "b"], "correct_index": 2}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.json")
	if err := os.WriteFile(path, []byte(validQuizJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	q, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if q.ModuleID != "phishing" {
		t.Errorf("module = %q", q.ModuleID)
	}

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`{"module_id": 7}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err = LoadFile(bad)
	if err == nil || !strings.Contains(err.Error(), "bad.json") {
		t.Errorf("error should name the file, got %v", err)
	}
}

func TestBuiltinCoversBaselineModules(t *testing.T) {
	for _, moduleID := range account.BaselineModules {
		q, err := Builtin(moduleID)
		if err != nil {
			t.Errorf("builtin %s: %v", moduleID, err)
			continue
		}
		if err := q.Validate(); err != nil {
			t.Errorf("builtin %s invalid: %v", moduleID, err)
		}
		if q.ModuleID != moduleID {
			t.Errorf("builtin %s has module id %q", moduleID, q.ModuleID)
		}
	}

	if _, err := Builtin("no-such-module"); err == nil {
		t.Error("expected error for unknown module")
	}
}

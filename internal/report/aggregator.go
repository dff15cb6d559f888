// Package report collects per-answer tuples during a session and renders
// them to a human-readable and a machine-readable export.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/cyberedu/internal/account"
)

// ErrNoActiveUser is returned by Export when no session is active.
var ErrNoActiveUser = errors.New("no active user, report not generated")

// DefaultFilePrefix is the export file name prefix when none is
// configured.
const DefaultFilePrefix = "cyberedu_report"

// Entry is one recorded answer submission.
type Entry struct {
	ModuleID      string `json:"module_id"`
	PhaseIndex    int    `json:"phase_index"`
	QuestionIndex int    `json:"question_index"`
	QuestionText  string `json:"question_text"`
	ChosenAnswer  string `json:"chosen_answer"`
	Correct       bool   `json:"correct"`
}

// document is the machine-readable export shape.
type document struct {
	User        string                   `json:"user"`
	GeneratedAt time.Time                `json:"generated_at"`
	Progress    []account.ModuleProgress `json:"progress"`
	Entries     []Entry                  `json:"entries"`
}

// Aggregator buffers entries for the running session. It satisfies the
// quiz engine's Recorder interface. Entries are never persisted on their
// own; Export flushes them to files on demand.
type Aggregator struct {
	dir     string
	prefix  string
	entries []Entry
}

// NewAggregator creates an Aggregator writing exports into dir with the
// given file prefix (DefaultFilePrefix when empty).
func NewAggregator(dir, prefix string) *Aggregator {
	if prefix == "" {
		prefix = DefaultFilePrefix
	}
	return &Aggregator{dir: dir, prefix: prefix}
}

// Record appends an entry. Append-only, no deduplication.
func (a *Aggregator) Record(e Entry) {
	a.entries = append(a.entries, e)
}

// RecordAnswer adapts the quiz engine's Recorder callback onto Record.
func (a *Aggregator) RecordAnswer(moduleID string, phaseIndex, questionIndex int, questionText, chosenAnswer string, correct bool) {
	a.Record(Entry{
		ModuleID:      moduleID,
		PhaseIndex:    phaseIndex,
		QuestionIndex: questionIndex,
		QuestionText:  questionText,
		ChosenAnswer:  chosenAnswer,
		Correct:       correct,
	})
}

// Entries returns a copy of the recorded entries in submission order.
// Mutating the returned slice does not affect the aggregator's buffer.
func (a *Aggregator) Entries() []Entry {
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Reset drops all recorded entries, typically at logout.
func (a *Aggregator) Reset() {
	a.entries = nil
}

// Export writes the TXT and JSON renderings of the current entry list
// plus the user's per-module percentages, and returns both paths. The
// files are named <prefix>_<displayName>_<timestamp> so repeated exports
// never overwrite each other.
func (a *Aggregator) Export(user *account.UserRecord, progress []account.ModuleProgress) (txtPath, jsonPath string, err error) {
	if user == nil {
		return "", "", ErrNoActiveUser
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create report dir: %w", err)
	}

	now := time.Now()
	base := fmt.Sprintf("%s_%s_%s", a.prefix, sanitize(user.DisplayName), now.Format("20060102_150405"))
	txtPath = filepath.Join(a.dir, base+".txt")
	jsonPath = filepath.Join(a.dir, base+".json")

	if err := os.WriteFile(txtPath, []byte(a.renderText(user, progress, now)), 0o644); err != nil {
		return "", "", fmt.Errorf("write text report: %w", err)
	}

	doc := document{
		User:        user.DisplayName,
		GeneratedAt: now,
		Progress:    progress,
		Entries:     a.entries,
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(jsonPath, raw, 0o644); err != nil {
		return "", "", fmt.Errorf("write json report: %w", err)
	}

	return txtPath, jsonPath, nil
}

// renderText builds the human-readable rendering.
func (a *Aggregator) renderText(user *account.UserRecord, progress []account.ModuleProgress, now time.Time) string {
	var b strings.Builder
	rule := strings.Repeat("=", 40)
	thin := strings.Repeat("-", 40)

	b.WriteString(rule + "\n")
	b.WriteString("           PROGRESS REPORT\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "User: %s\n", user.DisplayName)
	fmt.Fprintf(&b, "Date: %s\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString(thin + "\n\n")

	if len(progress) > 0 {
		b.WriteString(">>> PROGRESS BY MODULE <<<\n")
		for _, p := range progress {
			fmt.Fprintf(&b, "- %s: %.0f%%\n", p.ModuleID, p.Percent)
		}
		b.WriteString("\n")
	}

	b.WriteString(">>> QUIZ ANSWERS <<<\n")
	for _, e := range a.entries {
		result := "incorrect"
		if e.Correct {
			result = "correct"
		}
		fmt.Fprintf(&b, "[%s] Phase %d - Question %d\n", e.ModuleID, e.PhaseIndex+1, e.QuestionIndex+1)
		fmt.Fprintf(&b, "Question: %s\n", e.QuestionText)
		fmt.Fprintf(&b, "Answer: %s\n", e.ChosenAnswer)
		fmt.Fprintf(&b, "Result: %s\n", result)
		b.WriteString(thin + "\n")
	}

	return b.String()
}

// sanitize makes a display name safe for use in a file name.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, name)
}

// Package account defines the user record model, cohort rules, and
// password hashing for the CyberEdu core.
package account

import (
	"strings"
	"time"
)

// Cohort is one of the two fixed age-based user categories.
type Cohort string

const (
	// CohortYouth covers learners aged 12-30.
	CohortYouth Cohort = "youth"
	// CohortSenior covers learners aged 30-60.
	CohortSenior Cohort = "senior"
)

// AgeRange returns the inclusive valid age bounds for the cohort.
func (c Cohort) AgeRange() (min, max int) {
	if c == CohortSenior {
		return 30, 60
	}
	return 12, 30
}

// Valid reports whether the cohort is one of the two known values.
func (c Cohort) Valid() bool {
	return c == CohortYouth || c == CohortSenior
}

// Settings holds per-user presentation and accessibility preferences.
type Settings struct {
	Language    string `json:"language"`
	LargeFonts  bool   `json:"large_fonts"`
	Narration   bool   `json:"narration"`
	OfflineMode bool   `json:"offline_mode"`
}

// DefaultSettings returns the settings applied to new accounts.
func DefaultSettings() Settings {
	return Settings{Language: "es"}
}

// ModuleProgress is one module's completion percentage for a user.
type ModuleProgress struct {
	ModuleID string  `json:"module_id"`
	Percent  float64 `json:"percent"` // 0-100
}

// UserRecord is a registered learner. The ID is generated at registration
// and never changes; DisplayName and Email are unique case-insensitively
// across all records.
type UserRecord struct {
	ID           string
	DisplayName  string
	Email        string
	PasswordHash string
	Cohort       Cohort
	Age          int
	Settings     Settings
	CreatedAt    time.Time
}

// BaselineModules are the module identifiers seeded at 0% on registration.
// Progress Tracker, Quiz Phase Engine, and Report Aggregator must all use
// these exact spellings for a module's numbers to line up.
var BaselineModules = []string{
	"phishing",
	"safe-passwords",
	"privacy",
	"social-media",
	"responsible-ai",
	"digital-wellbeing",
}

// NormalizeIdentity lowercases and trims an identity string (display name
// or email) for case-insensitive comparison.
func NormalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

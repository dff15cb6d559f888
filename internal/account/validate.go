package account

import (
	"fmt"
	"strings"
)

// MinPasswordLength is the minimum accepted raw password length.
const MinPasswordLength = 6

// ValidationError reports a rejected registration field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RegisterInput carries the raw registration fields before hashing.
type RegisterInput struct {
	DisplayName string
	Email       string
	Password    string
	Cohort      Cohort
	Age         int
}

// Validate checks the registration fields and returns the first
// *ValidationError encountered, or nil. Uniqueness is not checked here;
// that belongs to the credential store.
func (in *RegisterInput) Validate() error {
	if strings.TrimSpace(in.DisplayName) == "" {
		return &ValidationError{Field: "display_name", Reason: "must not be empty"}
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if !looksLikeEmail(email) {
		return &ValidationError{Field: "email", Reason: "not a valid address"}
	}
	if len(in.Password) < MinPasswordLength {
		return &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}
	}
	if !in.Cohort.Valid() {
		return &ValidationError{Field: "cohort", Reason: "must be youth or senior"}
	}
	min, max := in.Cohort.AgeRange()
	if in.Age < min || in.Age > max {
		return &ValidationError{
			Field:  "age",
			Reason: fmt.Sprintf("must be between %d and %d for cohort %s", min, max, in.Cohort),
		}
	}
	return nil
}

// looksLikeEmail applies a minimal shape check: one '@' with non-empty
// local part and a domain containing a dot.
func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	domain := s[at+1:]
	if strings.Contains(domain, "@") {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

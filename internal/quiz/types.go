// Package quiz implements the phase-advancement state machine: ordered
// phases of ordered multiple-choice questions, advanced by answer
// submissions, with completion signals pushed to an external collaborator.
package quiz

import (
	"fmt"
)

// Question is one multiple-choice prompt. Options must be non-empty and
// CorrectIndex must be a valid index into Options.
type Question struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// Phase is an ordered sub-unit of a module's quiz.
type Phase struct {
	Name      string     `json:"name"`
	Questions []Question `json:"questions"`
}

// Quiz is a module's full phase list as loaded from content.
type Quiz struct {
	ModuleID string  `json:"module_id"`
	Phases   []Phase `json:"phases"`
}

// Validate checks structural invariants the JSON schema cannot express
// across fields: every question's correct index must point at one of its
// options.
func (q *Quiz) Validate() error {
	if q.ModuleID == "" {
		return fmt.Errorf("quiz has no module_id")
	}
	if len(q.Phases) == 0 {
		return fmt.Errorf("module %s: quiz has no phases", q.ModuleID)
	}
	for pi, phase := range q.Phases {
		if len(phase.Questions) == 0 {
			return fmt.Errorf("module %s: phase %d (%s) has no questions", q.ModuleID, pi, phase.Name)
		}
		for qi, question := range phase.Questions {
			if len(question.Options) == 0 {
				return fmt.Errorf("module %s: phase %d question %d has no options", q.ModuleID, pi, qi)
			}
			if question.CorrectIndex < 0 || question.CorrectIndex >= len(question.Options) {
				return fmt.Errorf("module %s: phase %d question %d: correct index %d out of range (%d options)",
					q.ModuleID, pi, qi, question.CorrectIndex, len(question.Options))
			}
		}
	}
	return nil
}

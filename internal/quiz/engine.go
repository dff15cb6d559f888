package quiz

import (
	"errors"
	"fmt"
)

// Policy decides what happens to the question index on a wrong answer.
// Earlier builds of the game shipped both behaviors in different modules;
// the engine makes the choice explicit per quiz instance.
type Policy int

const (
	// PolicyRetry keeps the current question on a wrong answer; the
	// learner must answer correctly to advance.
	PolicyRetry Policy = iota
	// PolicyAdvance moves to the next question regardless of correctness;
	// only the score reflects the mistake.
	PolicyAdvance
)

func (p Policy) String() string {
	if p == PolicyAdvance {
		return "advance"
	}
	return "retry"
}

// ParsePolicy maps a config string to a Policy, defaulting to retry.
func ParsePolicy(s string) Policy {
	if s == "advance" {
		return PolicyAdvance
	}
	return PolicyRetry
}

// ErrIndexOutOfRange reports an answer index outside the current
// question's options. The engine state is untouched when it is returned.
type ErrIndexOutOfRange struct {
	Index   int
	Options int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("answer index %d out of range (%d options)", e.Index, e.Options)
}

// ErrQuizComplete is returned by SubmitAnswer after the final phase has
// been finished.
var ErrQuizComplete = errors.New("quiz already complete")

// ErrUnknownPhase is returned by SyncToPhase for an ordinal outside the
// quiz's phase list.
var ErrUnknownPhase = errors.New("unknown phase ordinal")

// Recorder receives every answer submission, correct or not, before any
// state transition completes. The report aggregator implements this.
type Recorder interface {
	RecordAnswer(moduleID string, phaseIndex, questionIndex int, questionText, chosenAnswer string, correct bool)
}

// Notifier receives completion signals. The screen-navigation layer (out
// of scope here) implements this to unlock its "next" affordance.
type Notifier interface {
	PhaseCompleted(phaseIndex int)
	QuizCompleted()
}

// Outcome describes what a SubmitAnswer call did.
type Outcome struct {
	Correct        bool
	Advanced       bool // question index moved (or rolled into the next phase)
	PhaseCompleted bool
	CompletedPhase int // valid only when PhaseCompleted
	QuizCompleted  bool
}

// Engine walks ordered phases of ordered questions for one module.
// State is in-memory only; callers checkpoint progress externally.
// Not goroutine-safe.
type Engine struct {
	moduleID string
	phases   []Phase
	policy   Policy
	recorder Recorder
	notifier Notifier

	phaseIndex    int
	questionIndex int
	score         int
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy sets the wrong-answer policy (default PolicyRetry).
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithRecorder sets the answer recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithNotifier sets the completion notifier.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// New creates an Engine positioned at the first question of the first
// phase. The quiz must have passed Validate.
func New(q *Quiz, opts ...Option) *Engine {
	e := &Engine{
		moduleID: q.ModuleID,
		phases:   q.Phases,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ModuleID returns the module this engine belongs to.
func (e *Engine) ModuleID() string { return e.moduleID }

// PhaseIndex returns the current phase ordinal.
func (e *Engine) PhaseIndex() int { return e.phaseIndex }

// QuestionIndex returns the current question ordinal within the phase.
func (e *Engine) QuestionIndex() int { return e.questionIndex }

// Score returns the cumulative correct-answer count.
func (e *Engine) Score() int { return e.score }

// TotalQuestions returns the number of questions across all phases.
func (e *Engine) TotalQuestions() int {
	n := 0
	for _, p := range e.phases {
		n += len(p.Questions)
	}
	return n
}

// Done reports whether every phase has been completed.
func (e *Engine) Done() bool {
	return e.phaseIndex >= len(e.phases)
}

// CurrentPhase returns the active phase, or nil when the quiz is done.
func (e *Engine) CurrentPhase() *Phase {
	if e.Done() {
		return nil
	}
	return &e.phases[e.phaseIndex]
}

// CurrentQuestion returns the question at (phaseIndex, questionIndex), or
// nil when the quiz is complete.
func (e *Engine) CurrentQuestion() *Question {
	if e.Done() {
		return nil
	}
	phase := e.phases[e.phaseIndex]
	if e.questionIndex >= len(phase.Questions) {
		return nil
	}
	return &phase.Questions[e.questionIndex]
}

// SubmitAnswer checks optionIndex against the current question. The
// submission is recorded before any state transition. A correct answer
// increments the score and advances; end of phase emits PhaseCompleted
// and rolls into the next phase; end of the last phase emits
// QuizCompleted. A wrong answer advances or not per the engine's Policy.
// An out-of-range index returns *ErrIndexOutOfRange and changes nothing.
func (e *Engine) SubmitAnswer(optionIndex int) (Outcome, error) {
	if e.Done() {
		return Outcome{QuizCompleted: true}, ErrQuizComplete
	}

	q := e.CurrentQuestion()
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return Outcome{}, &ErrIndexOutOfRange{Index: optionIndex, Options: len(q.Options)}
	}

	correct := optionIndex == q.CorrectIndex

	// Report the submission before the indices move so the entry carries
	// the position the answer was given at.
	if e.recorder != nil {
		e.recorder.RecordAnswer(e.moduleID, e.phaseIndex, e.questionIndex, q.Prompt, q.Options[optionIndex], correct)
	}

	out := Outcome{Correct: correct}
	if correct {
		e.score++
	}

	if correct || e.policy == PolicyAdvance {
		out.Advanced = true
		e.advance(&out)
	}
	return out, nil
}

// advance moves to the next question, rolling phase and quiz boundaries.
func (e *Engine) advance(out *Outcome) {
	e.questionIndex++
	if e.questionIndex < len(e.phases[e.phaseIndex].Questions) {
		return
	}

	out.PhaseCompleted = true
	out.CompletedPhase = e.phaseIndex
	if e.notifier != nil {
		e.notifier.PhaseCompleted(e.phaseIndex)
	}

	e.phaseIndex++
	e.questionIndex = 0

	if e.phaseIndex >= len(e.phases) {
		out.QuizCompleted = true
		if e.notifier != nil {
			e.notifier.QuizCompleted()
		}
	}
}

// SyncToPhase aligns the engine with an externally selected phase
// ordinal. It is idempotent: the question index resets to 0 only when the
// ordinal differs from the current phase. The score is preserved.
func (e *Engine) SyncToPhase(ordinal int) error {
	if ordinal < 0 || ordinal >= len(e.phases) {
		return fmt.Errorf("%w: %d (have %d phases)", ErrUnknownPhase, ordinal, len(e.phases))
	}
	if ordinal == e.phaseIndex {
		return nil
	}
	e.phaseIndex = ordinal
	e.questionIndex = 0
	return nil
}

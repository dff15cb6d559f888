package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/cyberedu/internal/app"
	"github.com/abhisek/cyberedu/internal/quiz"
)

var playCmd = &cobra.Command{
	Use:   "play [module]",
	Short: "Play a module's quiz",
	Long: "Play a module's quiz phase by phase. Answers are recorded for the\n" +
		"progress report, and module progress advances as phases complete.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		if err := requireUser(cmd, a); err != nil {
			return err
		}
		user := a.Session.Current()

		var moduleID string
		if len(args) == 1 {
			moduleID = args[0]
		} else {
			fmt.Println("Available modules:")
			for _, m := range quiz.Modules() {
				fmt.Printf("  %s\n", m)
			}
			if moduleID, err = promptLine("Module: "); err != nil {
				return err
			}
		}

		q, err := loadQuiz(a.Config.QuizDir, moduleID)
		if err != nil {
			return err
		}

		engine := quiz.New(q,
			quiz.WithPolicy(quiz.ParsePolicy(a.Config.QuizPolicy)),
			quiz.WithRecorder(a.Reports),
		)

		ctx := cmd.Context()
		totalPhases := len(q.Phases)

		fmt.Printf("\n=== %s ===\n", moduleID)
		for !engine.Done() {
			phase := engine.CurrentPhase()
			question := engine.CurrentQuestion()

			fmt.Printf("\nPhase %d/%d: %s\n", engine.PhaseIndex()+1, totalPhases, phase.Name)
			fmt.Printf("\n%s\n", question.Prompt)
			for i, opt := range question.Options {
				fmt.Printf("  %d) %s\n", i+1, opt)
			}

			line, err := promptLine("Answer: ")
			if err != nil {
				return err
			}
			choice, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				fmt.Println("Enter the number of an option.")
				continue
			}

			out, err := engine.SubmitAnswer(choice - 1)
			var oor *quiz.ErrIndexOutOfRange
			if errors.As(err, &oor) {
				fmt.Printf("Pick a number between 1 and %d.\n", oor.Options)
				continue
			}
			if err != nil {
				return err
			}

			if out.Correct {
				fmt.Println("Correct!")
			} else if out.Advanced {
				fmt.Println("Not quite; moving on.")
			} else {
				fmt.Println("Not quite; try again.")
			}

			if out.PhaseCompleted {
				fmt.Printf("\nPhase %d complete.\n", out.CompletedPhase+1)
				pct := float64(out.CompletedPhase+1) / float64(totalPhases) * 100
				if err := checkpointProgress(cmd, a, user.ID, moduleID, pct); err != nil {
					a.Log.Warn("checkpoint progress", zap.Error(err))
				}
			}
		}

		fmt.Printf("\nQuiz complete! Score: %d/%d\n", engine.Score(), engine.TotalQuestions())

		snapshot, err := a.Tracker.ForUser(ctx, user.ID)
		if err != nil {
			return err
		}
		txt, jsonPath, err := a.Reports.Export(user, snapshot)
		if err != nil {
			return fmt.Errorf("export report: %w", err)
		}
		fmt.Printf("Report written:\n  %s\n  %s\n", txt, jsonPath)
		return nil
	},
}

// loadQuiz prefers an external JSON file in quizDir, falling back to the
// shipped content only when no override file exists. A present but broken
// override is an error, not a silent fallback.
func loadQuiz(quizDir, moduleID string) (*quiz.Quiz, error) {
	if quizDir != "" {
		q, err := quiz.LoadFile(filepath.Join(quizDir, moduleID+".json"))
		if err == nil {
			return q, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return quiz.Builtin(moduleID)
}

// checkpointProgress records phase completion as a percentage, never
// lowering a previously stored value.
func checkpointProgress(cmd *cobra.Command, a *app.App, userID, moduleID string, pct float64) error {
	ctx := cmd.Context()
	stored, err := a.Tracker.Get(ctx, userID, moduleID, 0)
	if err != nil {
		return err
	}
	if pct <= stored {
		return nil
	}
	_, err = a.Tracker.Set(ctx, userID, moduleID, pct)
	return err
}

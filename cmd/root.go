// Package cmd wires the CLI surface: registration, login, quiz play,
// progress, and report export on top of the core services.
package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/abhisek/cyberedu/internal/app"
	"github.com/abhisek/cyberedu/internal/config"
	"github.com/abhisek/cyberedu/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "cyberedu",
	Short: "Digital-safety trainer",
	Long:  "CyberEdu — scene-based digital-safety training with per-user progress tracking and quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite database file (overrides CYBEREDU_DB_PATH)")

	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(resetCmd)
}

// newApp loads environment, config, and logger, then constructs the
// service container. Callers must Close the returned App.
func newApp(cmd *cobra.Command) (*app.App, error) {
	// A missing .env file is fine; explicit config wins over it anyway.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	dbPath, _ := cmd.Flags().GetString("db")
	a, err := app.New(cfg, log, dbPath)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// closeApp closes the container, flushing the logger.
func closeApp(a *app.App) {
	_ = a.Log.Sync()
	if err := a.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "close store:", err)
	}
}

// promptLine reads one trimmed line from stdin.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read otherwise (tests, pipes).
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	return promptLine("")
}

// requireUser restores the remembered session and returns an error when
// nobody is logged in.
func requireUser(cmd *cobra.Command, a *app.App) error {
	if err := a.Restore(cmd.Context()); err != nil {
		a.Log.Warn("restore session", zap.Error(err))
	}
	if a.Session.Current() == nil {
		return fmt.Errorf("no active session; run 'cyberedu login' first")
	}
	return nil
}

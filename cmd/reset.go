package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/cyberedu/internal/config"
	"github.com/abhisek/cyberedu/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the local database",
	Long:  "Delete the local database file, removing all accounts, progress, and events.",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve the path without opening the store; reset must work even
		// when the file is corrupt.
		_ = godotenv.Load()
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbPath, _ := cmd.Flags().GetString("db")
		if dbPath == "" {
			dbPath = cfg.DBPath
		}
		if dbPath == "" {
			if dbPath, err = store.DefaultDBPath(); err != nil {
				return err
			}
		}

		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			fmt.Println("Nothing to reset; no database at", dbPath)
			return nil
		}

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			answer, err := promptLine(fmt.Sprintf("Delete %s and all data? (yes/no): ", dbPath))
			if err != nil {
				return err
			}
			if strings.ToLower(answer) != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
		// SQLite WAL leaves sidecar files next to the database.
		_ = os.Remove(dbPath + "-wal")
		_ = os.Remove(dbPath + "-shm")

		fmt.Println("Database deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("force", "f", false, "Skip the confirmation prompt")
}

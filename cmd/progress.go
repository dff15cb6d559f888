package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show module progress for the active user",
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

		rows, err := a.Tracker.ForUser(cmd.Context(), user.ID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No progress recorded yet.")
			return nil
		}

		fmt.Printf("Progress for %s:\n", user.DisplayName)
		for _, row := range rows {
			fmt.Printf("  %-20s %6.1f%%\n", row.ModuleID, row.Percent)
		}
		return nil
	},
}

var progressSetCmd = &cobra.Command{
	Use:   "set <module> <percent>",
	Short: "Set a module's progress directly",
	Args:  cobra.ExactArgs(2),
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

		pct, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("percent must be a number")
		}

		stored, err := a.Tracker.Set(cmd.Context(), user.ID, args[0], pct)
		if err != nil {
			return err
		}
		fmt.Printf("%s is now at %.1f%%\n", args[0], stored)
		return nil
	},
}

func init() {
	progressCmd.AddCommand(progressSetCmd)
}

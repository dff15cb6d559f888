package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export a progress report",
	Long: "Export the active user's progress as a readable TXT file and a\n" +
		"machine-readable JSON file. Quiz answers appear only in reports\n" +
		"exported at the end of a play session.",
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

		snapshot, err := a.Tracker.ForUser(cmd.Context(), user.ID)
		if err != nil {
			return err
		}

		txt, jsonPath, err := a.Reports.Export(user, snapshot)
		if err != nil {
			return err
		}
		fmt.Printf("Report written:\n  %s\n  %s\n", txt, jsonPath)
		return nil
	},
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		if err := requireUser(cmd, a); err != nil {
			return err
		}

		u := a.Session.Current()
		fmt.Printf("User:   %s\n", u.DisplayName)
		fmt.Printf("Email:  %s\n", u.Email)
		fmt.Printf("Cohort: %s (age %d)\n", u.Cohort, u.Age)
		fmt.Printf("Language: %s\n", u.Settings.Language)
		return nil
	},
}

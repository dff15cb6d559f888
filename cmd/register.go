package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberedu/internal/account"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		cohort, _ := cmd.Flags().GetString("cohort")
		age, _ := cmd.Flags().GetInt("age")

		if name == "" {
			if name, err = promptLine("Display name: "); err != nil {
				return err
			}
		}
		if email == "" {
			if email, err = promptLine("Email: "); err != nil {
				return err
			}
		}
		if cohort == "" {
			if cohort, err = promptLine("Cohort (youth/senior): "); err != nil {
				return err
			}
		}
		if age == 0 {
			line, err := promptLine("Age: ")
			if err != nil {
				return err
			}
			if age, err = strconv.Atoi(line); err != nil {
				return fmt.Errorf("age must be a number")
			}
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		rec, err := a.Session.Register(cmd.Context(), account.RegisterInput{
			DisplayName: name,
			Email:       email,
			Password:    password,
			Cohort:      account.Cohort(cohort),
			Age:         age,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Welcome, %s! Your account is ready and you are logged in.\n", rec.DisplayName)
		fmt.Printf("Baseline modules seeded: %d\n", len(account.BaselineModules))
		return nil
	},
}

func init() {
	registerCmd.Flags().String("name", "", "Display name")
	registerCmd.Flags().String("email", "", "Email address")
	registerCmd.Flags().String("cohort", "", "Cohort: youth (12-30) or senior (30-60)")
	registerCmd.Flags().Int("age", 0, "Age")
}

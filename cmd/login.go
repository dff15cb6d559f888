package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login [identity]",
	Short: "Log in with a display name or email",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		var identity string
		if len(args) == 1 {
			identity = args[0]
		} else {
			if identity, err = promptLine("Display name or email: "); err != nil {
				return err
			}
		}

		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		remember, _ := cmd.Flags().GetBool("remember")
		rec, err := a.Session.Authenticate(cmd.Context(), identity, password, remember)
		if err != nil {
			return err
		}

		fmt.Printf("Logged in as %s.\n", rec.DisplayName)
		if remember {
			fmt.Println("This session will be restored automatically next time.")
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().BoolP("remember", "r", false, "Remember this session across restarts")
}

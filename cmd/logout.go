package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberedu/internal/session"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the remembered session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		if err := a.Restore(cmd.Context()); err != nil {
			return err
		}

		err = a.Session.Logout(cmd.Context())
		if errors.Is(err, session.ErrNoActiveUser) {
			fmt.Println("Nobody is logged in.")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

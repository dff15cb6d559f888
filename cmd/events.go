package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent audit events",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer closeApp(a)

		limit, _ := cmd.Flags().GetInt("limit")
		events, err := a.Store.EventRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No events recorded.")
			return nil
		}

		for _, e := range events {
			fmt.Printf("%s  %-16s %s\n", e.At.Format(time.RFC3339), e.Kind, e.Detail)
		}
		return nil
	},
}

func init() {
	eventsCmd.Flags().Int("limit", 50, "Maximum number of events to show")
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVisitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "visit <token>...",
		Short: "Record that words were explored, feeding recommendations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			if err := a.visits.RecordVisits(ctx, args); err != nil {
				return fmt.Errorf("visits.RecordVisits() > %w", err)
			}

			for _, token := range args {
				fmt.Printf("%s: %d visits\n", token, a.visits.CountFor(token))
			}
			return nil
		},
	}
}

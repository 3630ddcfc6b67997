package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mreichhoff/TrieLingual/internal/cli"
	"github.com/mreichhoff/TrieLingual/internal/scheduler"
)

func newStudyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "study",
		Short: "Review the cards that are due",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			fmt.Printf("Study session for %s started. Ctrl-C or 'q' to stop.\n\n", a.cfg.Language)

			session := cli.NewStudySessionCLI(a.store, scheduler.New(a.store), a.results)
			return session.Run(ctx, session)
		},
	}
}

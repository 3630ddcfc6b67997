package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mreichhoff/TrieLingual/internal/datasync"
)

func newSyncCommand() *cobra.Command {
	syncCommand := &cobra.Command{
		Use:   "sync",
		Short: "Move study progress between devices via snapshot files",
	}

	syncCommand.AddCommand(newSyncExportCommand())
	syncCommand.AddCommand(newSyncImportCommand())

	return syncCommand
}

func newSyncExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write a snapshot of the study list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			path := args[0]
			if err := datasync.WriteSnapshot(path, a.cfg.Language, a.store.All()); err != nil {
				return fmt.Errorf("datasync.WriteSnapshot() > %w", err)
			}
			fmt.Printf("Wrote %d cards to %s\n", a.store.Len(), path)
			return nil
		},
	}
}

func newSyncImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge a snapshot into the study list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			path := args[0]
			snapshot, err := datasync.ReadSnapshot(path)
			if err != nil {
				return fmt.Errorf("datasync.ReadSnapshot() > %w", err)
			}

			before := a.store.Len()
			if err := datasync.Import(ctx, a.store, snapshot); err != nil {
				return fmt.Errorf("datasync.Import() > %w", err)
			}
			fmt.Printf("Merged %d incoming cards; the list went from %d to %d cards.\n",
				len(snapshot.Cards), before, a.store.Len())
			return nil
		},
	}
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mreichhoff/TrieLingual/internal/studylist"
)

func newExportCommand() *cobra.Command {
	var outputPath string

	command := &cobra.Command{
		Use:   "export",
		Short: "Export the study list as plain text (target;base per line)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			path := outputPath
			if path == "" {
				if err := os.MkdirAll(a.cfg.Outputs.ExportDirectory, 0755); err != nil {
					return fmt.Errorf("os.MkdirAll(%s) > %w", a.cfg.Outputs.ExportDirectory, err)
				}
				path = filepath.Join(a.cfg.Outputs.ExportDirectory, "studyList-"+a.cfg.Language+".txt")
			}

			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("os.Create(%s) > %w", path, err)
			}
			defer func() {
				_ = file.Close()
			}()

			if err := studylist.Export(file, a.store.All()); err != nil {
				return fmt.Errorf("studylist.Export() > %w", err)
			}

			fmt.Printf("Exported %d cards to %s\n", a.store.Len(), path)
			return nil
		},
	}

	command.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: the configured export directory)")
	return command
}

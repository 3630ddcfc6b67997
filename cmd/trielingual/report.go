package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mreichhoff/TrieLingual/internal/report"
	"github.com/mreichhoff/TrieLingual/internal/stats"
)

func newReportCommand() *cobra.Command {
	var toPDF bool

	command := &cobra.Command{
		Use:   "report",
		Short: "Write a markdown study report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			now := time.Now()
			records := a.store.All()

			data := report.Data{
				Language:      a.cfg.Language,
				GeneratedAt:   now,
				CardCount:     len(records),
				Hourly:        stats.HourlyAccuracy(a.results.Hourly()),
				StudyCalendar: stats.StudyCalendar(a.results.Daily(), now),
				AddedCalendar: stats.AddedCalendar(records, a.index, now),
				Legend:        a.cfg.Trie.Legend,
			}
			if a.index != nil {
				data.Coverage = stats.Coverage(a.index, records, a.visits.All())
			}

			if err := os.MkdirAll(a.cfg.Outputs.ReportDirectory, 0755); err != nil {
				return fmt.Errorf("os.MkdirAll(%s) > %w", a.cfg.Outputs.ReportDirectory, err)
			}
			markdownPath := filepath.Join(
				a.cfg.Outputs.ReportDirectory,
				fmt.Sprintf("report-%s-%s.md", a.cfg.Language, now.Format("2006-01-02")),
			)
			if err := os.WriteFile(markdownPath, []byte(report.Markdown(data)), 0644); err != nil {
				return fmt.Errorf("os.WriteFile(%s) > %w", markdownPath, err)
			}
			fmt.Printf("Wrote %s\n", markdownPath)

			if toPDF {
				pdfPath, err := report.ConvertMarkdownToPDF(markdownPath)
				if err != nil {
					return fmt.Errorf("report.ConvertMarkdownToPDF() > %w", err)
				}
				fmt.Printf("Wrote %s\n", pdfPath)
			}
			return nil
		},
	}

	command.Flags().BoolVar(&toPDF, "pdf", false, "also convert the report to PDF")
	return command
}

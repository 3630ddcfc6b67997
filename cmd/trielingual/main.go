package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "trielingual",
		Short: "Vocabulary study lists with spaced repetition",
	}

	flags := rootCommand.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "path to the configuration file")

	rootCommand.AddCommand(newAddCommand())
	rootCommand.AddCommand(newStudyCommand())
	rootCommand.AddCommand(newListCommand())
	rootCommand.AddCommand(newRemoveCommand())
	rootCommand.AddCommand(newVisitCommand())
	rootCommand.AddCommand(newStatsCommand())
	rootCommand.AddCommand(newRecommendCommand())
	rootCommand.AddCommand(newExportCommand())
	rootCommand.AddCommand(newSyncCommand())
	rootCommand.AddCommand(newReportCommand())

	return rootCommand
}

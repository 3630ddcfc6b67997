package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mreichhoff/TrieLingual/internal/recommend"
	"github.com/mreichhoff/TrieLingual/internal/stats"
)

func newStatsCommand() *cobra.Command {
	statsCommand := &cobra.Command{
		Use:   "stats",
		Short: "Study statistics",
	}

	statsCommand.AddCommand(newStatsHourlyCommand())
	statsCommand.AddCommand(newStatsCalendarCommand())
	statsCommand.AddCommand(newStatsCoverageCommand())

	return statsCommand
}

func newStatsHourlyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hourly",
		Short: "Review accuracy by hour of day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			for _, hour := range stats.HourlyAccuracy(a.results.Hourly()) {
				if hour.Count == 0 {
					continue
				}
				fmt.Printf("%02d:00  %3d reviews  %3d%% correct\n", hour.Hour, hour.Count, *hour.Percent)
			}
			return nil
		},
	}
}

func newStatsCalendarCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "Daily study and added-card activity",
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

			fmt.Println("Study activity:")
			for _, day := range stats.StudyCalendar(a.results.Daily(), now) {
				if day.Total == 0 {
					continue
				}
				fmt.Printf("  %s  %3d reviews  [%s]\n", day.Date.Format("2006-01-02"), day.Total, day.Intensity)
			}

			fmt.Println("Added cards:")
			for _, day := range stats.AddedCalendar(a.store.All(), a.index, now) {
				if day.Total == 0 {
					continue
				}
				line := fmt.Sprintf("  %s  %3d added  [%s]", day.Date.Format("2006-01-02"), day.Total, day.Intensity)
				if len(day.NewWords) > 0 {
					line += fmt.Sprintf("  new: %v", day.NewWords)
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func newStatsCoverageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "coverage",
		Short: "Vocabulary coverage by frequency level",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			if a.index == nil {
				return fmt.Errorf("no trie configured; set trie.path in the config file")
			}

			bold := color.New(color.Bold)
			legend := a.cfg.Trie.Legend
			for _, level := range stats.Coverage(a.index, a.store.All(), a.visits.All()) {
				label := fmt.Sprintf("Level %d", level.Level)
				if level.Level-1 < len(legend) {
					label = legend[level.Level-1]
				}
				fmt.Printf("%s: %d/%d studied, %d visited\n",
					bold.Sprint(label), level.Studied, level.Total, level.Visited)
				if len(level.MissingStudied) > 0 {
					fmt.Printf("  not yet studied: %v\n", level.MissingStudied)
				}
			}
			return nil
		},
	}
}

func newRecommendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend",
		Short: "Suggest words to explore next",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			if a.index == nil {
				return fmt.Errorf("no trie configured; set trie.path in the config file")
			}

			words := recommend.Recommend(a.index, a.visits.All(), a.cfg.Recommend.MinLevel, a.cfg.Recommend.MaxLevel)
			if len(words) == 0 {
				fmt.Println("Not enough exploration yet. Visit a few more words first.")
				return nil
			}
			for _, word := range words {
				fmt.Println(word)
			}
			return nil
		},
	}
}

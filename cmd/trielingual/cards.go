package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mreichhoff/TrieLingual/internal/studylist"
)

func newAddCommand() *cobra.Command {
	var answer string

	command := &cobra.Command{
		Use:   "add <token>...",
		Short: "Add a flashcard for an n-gram",
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

			added, err := a.store.AddCards(ctx, []studylist.Candidate{
				{Tokens: args, Answer: answer},
			})
			if err != nil {
				return fmt.Errorf("store.AddCards() > %w", err)
			}

			if len(added) == 0 {
				fmt.Printf("%q is already in the study list (or the answer was empty).\n", studylist.JoinTokens(args))
				return nil
			}
			fmt.Printf("Added %q. %d cards in the list.\n", studylist.JoinTokens(args), a.store.Len())
			return nil
		},
	}

	command.Flags().StringVarP(&answer, "answer", "a", "", "the base-language side of the card")
	_ = command.MarkFlagRequired("answer")
	return command
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the study list",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			records := a.store.All()
			if len(records) == 0 {
				fmt.Println("The study list is empty.")
				return nil
			}

			keys := make([]string, 0, len(records))
			for key := range records {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			now := time.Now()
			bold := color.New(color.Bold)
			dueCount := 0
			for _, key := range keys {
				record := records[key]
				marker := " "
				if record.IsDue(now) {
					marker = color.YellowString("*")
					dueCount++
				}
				fmt.Printf("%s %s — %s (%d right, %d wrong)\n",
					marker,
					bold.Sprint(studylist.JoinTokens(record.Target)),
					record.Base,
					record.RightCount,
					record.WrongCount,
				)
			}
			fmt.Printf("\n%d cards, %d due.\n", len(records), dueCount)
			return nil
		},
	}
}

func newRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key>",
		Short: "Remove a card from the study list",
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

			key := args[0]
			if _, ok := a.store.Get(key); !ok {
				fmt.Printf("No card with key %q; nothing removed.\n", key)
			}
			if err := a.store.Remove(ctx, key); err != nil {
				return fmt.Errorf("store.Remove(%s) > %w", key, err)
			}
			fmt.Printf("%d cards remain.\n", a.store.Len())
			return nil
		},
	}
}

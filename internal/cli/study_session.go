package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/mreichhoff/TrieLingual/internal/results"
	"github.com/mreichhoff/TrieLingual/internal/scheduler"
	"github.com/mreichhoff/TrieLingual/internal/studylist"
)

// StudySessionCLI runs a self-graded flashcard session over the due cards of
// a study list. The front of a card is the target-language n-gram; the user
// reveals the back and reports whether they remembered it.
type StudySessionCLI struct {
	*InteractiveCLI
	store     *studylist.Store
	scheduler *scheduler.Scheduler
	results   *results.Log
	now       func() time.Time
}

// NewStudySessionCLI creates a study session over stdin/stdout. Pass nil
// readers and writers to use the process defaults.
func NewStudySessionCLI(
	store *studylist.Store,
	sched *scheduler.Scheduler,
	log *results.Log,
	opts ...StudySessionOption,
) *StudySessionCLI {
	cli := &StudySessionCLI{
		InteractiveCLI: newInteractiveCLI(nil, nil),
		store:          store,
		scheduler:      sched,
		results:        log,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// StudySessionOption customizes a StudySessionCLI, mainly for tests.
type StudySessionOption func(*StudySessionCLI)

func WithStreams(stdin io.Reader, stdout io.Writer) StudySessionOption {
	return func(cli *StudySessionCLI) {
		cli.InteractiveCLI = newInteractiveCLI(stdin, stdout)
	}
}

func WithClock(now func() time.Time) StudySessionOption {
	return func(cli *StudySessionCLI) {
		cli.now = now
	}
}

func (cli *StudySessionCLI) Session(ctx context.Context) error {
	now := cli.now()
	key, record, dueCount, ok := scheduler.NextDue(cli.store.All(), now)
	if !ok || !record.IsDue(now) {
		fmt.Fprintln(cli.stdoutWriter, "No more cards due. Come back later!")
		return errEnd
	}

	fmt.Fprintf(cli.stdoutWriter, "%d cards due.\n", dueCount)
	fmt.Fprintf(cli.stdoutWriter, "%s\n", cli.bold.Sprint(studylist.JoinTokens(record.Target)))
	fmt.Fprint(cli.stdoutWriter, "Press enter to reveal the answer...")
	if _, err := cli.stdinReader.ReadString('\n'); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	fmt.Fprintf(cli.stdoutWriter, "%s\n", cli.italic.Sprint(record.Base))
	fmt.Fprint(cli.stdoutWriter, "Did you remember it? [y/n/q]: ")
	answer, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "q", "quit":
		return errEnd
	case "y", "yes":
		return cli.grade(ctx, key, true)
	default:
		return cli.grade(ctx, key, false)
	}
}

func (cli *StudySessionCLI) grade(ctx context.Context, key string, correct bool) error {
	updated, err := cli.scheduler.Review(ctx, key, correct)
	if err != nil {
		return fmt.Errorf("scheduler.Review(%s) > %w", key, err)
	}

	outcome := results.Incorrect
	if correct {
		outcome = results.Correct
	}
	if err := cli.results.Record(ctx, outcome); err != nil {
		return fmt.Errorf("results.Record() > %w", err)
	}

	nextDue := time.UnixMilli(updated.Due)
	if correct {
		fmt.Fprint(cli.stdoutWriter, "✅ ")
		fmt.Fprintln(cli.stdoutWriter, color.GreenString("Nice. Next review %s.", nextDue.Format("2006-01-02 15:04")))
	} else {
		fmt.Fprint(cli.stdoutWriter, "❌ ")
		fmt.Fprintln(cli.stdoutWriter, color.RedString("It stays in today's queue."))
	}
	fmt.Fprintln(cli.stdoutWriter)
	return nil
}

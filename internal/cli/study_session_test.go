package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mreichhoff/TrieLingual/internal/notify"
	"github.com/mreichhoff/TrieLingual/internal/results"
	"github.com/mreichhoff/TrieLingual/internal/scheduler"
	"github.com/mreichhoff/TrieLingual/internal/studylist"
	"github.com/mreichhoff/TrieLingual/internal/testutil"
)

func newSessionFixture(t *testing.T, input string) (*StudySessionCLI, *studylist.Store, *results.Log, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	storage := testutil.NewMemoryStorage()
	notifier := notify.New()

	store := studylist.NewStore(storage, notifier, "fr")
	require.NoError(t, store.Initialize(ctx))

	log := results.NewLog(storage, notifier, "fr")
	require.NoError(t, log.Initialize(ctx))

	var out bytes.Buffer
	cli := NewStudySessionCLI(
		store,
		scheduler.New(store),
		log,
		WithStreams(strings.NewReader(input), &out),
	)
	return cli, store, log, &out
}

func TestSessionNoCardsDue(t *testing.T) {
	cli, _, _, out := newSessionFixture(t, "")

	err := cli.Session(context.Background())
	assert.ErrorIs(t, err, errEnd)
	assert.Contains(t, out.String(), "No more cards due")
}

func TestSessionCorrectAnswer(t *testing.T) {
	ctx := context.Background()
	cli, store, log, out := newSessionFixture(t, "\ny\n")

	_, err := store.AddCards(ctx, []studylist.Candidate{
		{Tokens: []string{"chat", "noir"}, Answer: "black cat"},
	})
	require.NoError(t, err)

	require.NoError(t, cli.Session(ctx))

	record, ok := store.Get("chatnoir")
	require.True(t, ok)
	assert.Equal(t, 1, record.RightCount)
	assert.Equal(t, 0, record.WrongCount)
	assert.Equal(t, 1.0, record.NextJump)

	daily := log.Daily()
	require.Len(t, daily, 1)
	for _, counts := range daily {
		assert.Equal(t, 1, counts.Correct)
		assert.Equal(t, 0, counts.Incorrect)
	}

	assert.Contains(t, out.String(), "1 cards due.")
	assert.Contains(t, out.String(), "chat noir")
	assert.Contains(t, out.String(), "black cat")

	// the card earned half a day, so a second pass finds nothing due
	err = cli.Session(ctx)
	assert.ErrorIs(t, err, errEnd)
}

func TestSessionWrongAnswerKeepsCardDue(t *testing.T) {
	ctx := context.Background()
	cli, store, log, _ := newSessionFixture(t, "\nn\n")

	_, err := store.AddCards(ctx, []studylist.Candidate{
		{Tokens: []string{"chien"}, Answer: "dog"},
	})
	require.NoError(t, err)

	require.NoError(t, cli.Session(ctx))

	record, ok := store.Get("chien")
	require.True(t, ok)
	assert.Equal(t, 1, record.WrongCount)
	assert.Equal(t, studylist.DefaultJump, record.NextJump)

	for _, counts := range log.Daily() {
		assert.Equal(t, 1, counts.Incorrect)
	}

	_, _, dueCount, ok := scheduler.NextDue(store.All(), cli.now())
	assert.True(t, ok, "a missed card goes straight back into the queue")
	assert.Equal(t, 1, dueCount)
}

func TestSessionQuit(t *testing.T) {
	ctx := context.Background()
	cli, store, _, _ := newSessionFixture(t, "\nq\n")

	_, err := store.AddCards(ctx, []studylist.Candidate{
		{Tokens: []string{"maison"}, Answer: "house"},
	})
	require.NoError(t, err)

	err = cli.Session(ctx)
	assert.ErrorIs(t, err, errEnd)

	record, ok := store.Get("maison")
	require.True(t, ok)
	assert.Equal(t, 0, record.RightCount+record.WrongCount, "quitting records no outcome")
}

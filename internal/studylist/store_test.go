package studylist

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mreichhoff/TrieLingual/internal/notify"
	"github.com/mreichhoff/TrieLingual/internal/testutil"
)

func newTestStore(t *testing.T) (*Store, *testutil.MemoryStorage) {
	t.Helper()
	mem := testutil.NewMemoryStorage()
	store := NewStore(mem, notify.New(), "fr")
	require.NoError(t, store.Initialize(context.Background()))
	return store, mem
}

func TestStore_AddCards(t *testing.T) {
	store, mem := newTestStore(t)
	now := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	added, err := store.AddCards(context.Background(), []Candidate{
		{Tokens: []string{"chat"}, Answer: "cat"},
		{Tokens: []string{"chien"}, Answer: "dog"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"chat", "chien"}, added)

	all := store.All()
	require.Len(t, all, 2)

	chat := all["chat"]
	assert.Equal(t, "cat", chat.Base)
	assert.Equal(t, []string{"chat"}, chat.Target)
	assert.Equal(t, 0, chat.RightCount)
	assert.Equal(t, 0, chat.WrongCount)
	assert.Equal(t, now.UnixMilli(), chat.Added)
	assert.Zero(t, chat.NextJump, "interval stays unset until first review")

	// both cards are immediately due, with batch-index offsets keeping the
	// due ordering stable within the same millisecond
	assert.Equal(t, now.UnixMilli(), chat.Due)
	assert.Equal(t, now.UnixMilli()+1, all["chien"].Due)

	assert.Equal(t, 1, mem.Saves, "one flush per batch")
}

func TestStore_AddCardsSkipsEmptyAnswer(t *testing.T) {
	store, _ := newTestStore(t)

	added, err := store.AddCards(context.Background(), []Candidate{
		{Tokens: []string{"chat"}, Answer: ""},
		{Tokens: []string{"chien"}, Answer: "dog"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"chien"}, added)
	assert.False(t, store.Contains([]string{"chat"}))
}

func TestStore_AddCardsIsIdempotentPerKey(t *testing.T) {
	store, _ := newTestStore(t)
	first := time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return first }

	_, err := store.AddCards(context.Background(), []Candidate{{Tokens: []string{"chat"}, Answer: "cat"}})
	require.NoError(t, err)

	// simulate progress, then re-add the same tokens later
	_, err = store.Update(context.Background(), "chat", func(r *Record) {
		r.RightCount = 3
		r.NextJump = 4
	})
	require.NoError(t, err)

	store.now = func() time.Time { return first.Add(48 * time.Hour) }
	added, err := store.AddCards(context.Background(), []Candidate{{Tokens: []string{"chat"}, Answer: "cat"}})
	require.NoError(t, err)
	assert.Empty(t, added)

	record, ok := store.Get("chat")
	require.True(t, ok)
	assert.Equal(t, 3, record.RightCount, "existing progress is never overwritten")
	assert.Equal(t, 4.0, record.NextJump)
	assert.Equal(t, first.UnixMilli(), record.Added)
}

func TestStore_AddCardsSanitizesKeys(t *testing.T) {
	store, _ := newTestStore(t)

	added, err := store.AddCards(context.Background(), []Candidate{
		{Tokens: []string{"qu'est-ce", "que", "c'est", "?"}, Answer: "what is it"},
	})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, "qu'est-cequec'est?", added[0])

	// lookup goes through the same derivation
	assert.True(t, store.Contains([]string{"qu'est-ce", "que", "c'est", "?"}))
}

func TestStore_RoundTrip(t *testing.T) {
	store, mem := newTestStore(t)
	_, err := store.AddCards(context.Background(), []Candidate{
		{Tokens: []string{"chat"}, Answer: "cat"},
		{Tokens: []string{"bonne", "nuit"}, Answer: "good night"},
	})
	require.NoError(t, err)

	reloaded := NewStore(mem, notify.New(), "fr")
	require.NoError(t, reloaded.Initialize(context.Background()))
	assert.Equal(t, store.All(), reloaded.All())
}

func TestStore_InitializeToleratesMalformedPayload(t *testing.T) {
	mem := testutil.NewMemoryStorage()
	mem.Blobs["studyList/fr"] = []byte(`{not json`)

	store := NewStore(mem, notify.New(), "fr")
	require.NoError(t, store.Initialize(context.Background()))
	assert.Zero(t, store.Len(), "malformed persisted state falls back to empty")
}

func TestStore_InitializeIsScopedPerLanguage(t *testing.T) {
	mem := testutil.NewMemoryStorage()
	mem.Blobs["studyList/fr"] = []byte(`{"chat":{"base":"cat","due":1,"target":["chat"],"wrongCount":0,"rightCount":0,"added":1}}`)

	es := NewStore(mem, notify.New(), "es")
	require.NoError(t, es.Initialize(context.Background()))
	assert.Zero(t, es.Len())

	fr := NewStore(mem, notify.New(), "fr")
	require.NoError(t, fr.Initialize(context.Background()))
	assert.Equal(t, 1, fr.Len())
}

func TestStore_Remove(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.AddCards(context.Background(), []Candidate{{Tokens: []string{"chat"}, Answer: "cat"}})
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), "chat"))
	assert.Zero(t, store.Len())

	// deleting a key that is not there is a silent no-op
	require.NoError(t, store.Remove(context.Background(), "chien"))
}

func TestStore_UpdateUnknownKey(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.Update(context.Background(), "nope", func(*Record) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_FindRelated(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.AddCards(context.Background(), []Candidate{
		{Tokens: []string{"chat"}, Answer: "cat"},
		{Tokens: []string{"chat", "noir"}, Answer: "black cat"},
		{Tokens: []string{"le", "chat"}, Answer: "the cat"},
		{Tokens: []string{"chien"}, Answer: "dog"},
	})
	require.NoError(t, err)

	_, err = store.Update(context.Background(), "chatnoir", func(r *Record) { r.RightCount = 5 })
	require.NoError(t, err)
	_, err = store.Update(context.Background(), "lechat", func(r *Record) { r.RightCount = 2 })
	require.NoError(t, err)

	related := store.FindRelated(" Chat ", "chat", 10)
	require.Len(t, related, 2, "excluded key and non-matching cards are filtered")
	assert.Equal(t, "chatnoir", related[0].Key, "sorted by rightCount descending")
	assert.Equal(t, "lechat", related[1].Key)

	limited := store.FindRelated("chat", "chat", 1)
	require.Len(t, limited, 1)
	assert.Equal(t, "chatnoir", limited[0].Key)
}

func TestStore_CardCount(t *testing.T) {
	store, _ := newTestStore(t)
	_, err := store.AddCards(context.Background(), []Candidate{
		{Tokens: []string{"chat"}, Answer: "cat"},
		{Tokens: []string{"chat", "noir"}, Answer: "black cat"},
		{Tokens: []string{"chien"}, Answer: "dog"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, store.CardCount("CHAT"))
	assert.Equal(t, 1, store.CardCount(" chien "))
	assert.Equal(t, 0, store.CardCount("maison"))
}

func TestStore_NotifiesOnMutation(t *testing.T) {
	mem := testutil.NewMemoryStorage()
	notifier := notify.New()
	store := NewStore(mem, notifier, "fr")
	require.NoError(t, store.Initialize(context.Background()))

	var events []notify.Event
	notifier.Subscribe(notify.StudyListChanged, func(e notify.Event) {
		events = append(events, e)
	})

	_, err := store.AddCards(context.Background(), []Candidate{{Tokens: []string{"chat"}, Answer: "cat"}})
	require.NoError(t, err)
	require.NoError(t, store.Remove(context.Background(), "chat"))

	require.Len(t, events, 2)
	assert.Equal(t, "fr", events[0].Language)
	payload, ok := events[1].Payload.(map[string]Record)
	require.True(t, ok)
	assert.Empty(t, payload, "event carries the new map")
}

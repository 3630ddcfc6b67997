package results

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mreichhoff/TrieLingual/internal/notify"
	"github.com/mreichhoff/TrieLingual/internal/testutil"
)

func newTestLog(t *testing.T, now time.Time) (*Log, *testutil.MemoryStorage) {
	t.Helper()
	mem := testutil.NewMemoryStorage()
	log := NewLog(mem, notify.New(), "fr")
	require.NoError(t, log.Initialize(context.Background()))
	log.now = func() time.Time { return now }
	return log, mem
}

func TestLog_RecordBucketsByLocalHourAndDay(t *testing.T) {
	// fixed zone so the local/UTC distinction is actually exercised
	zone := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2024, 3, 5, 14, 30, 0, 0, zone)
	log, _ := newTestLog(t, now)

	require.NoError(t, log.Record(context.Background(), Correct))

	hourly := log.Hourly()
	assert.Equal(t, 1, hourly[14].Correct)
	assert.Equal(t, 0, hourly[14].Incorrect)

	daily := log.Daily()
	assert.Equal(t, 1, daily["2024-03-05"].Correct)
}

func TestLog_RecordAccumulates(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 0, 0, 0, time.Local)
	log, _ := newTestLog(t, now)
	ctx := context.Background()

	require.NoError(t, log.Record(ctx, Correct))
	require.NoError(t, log.Record(ctx, Correct))
	require.NoError(t, log.Record(ctx, Incorrect))

	hourly := log.Hourly()
	assert.Equal(t, Counts{Correct: 2, Incorrect: 1}, hourly[14])
	assert.Equal(t, 3, hourly[14].Total())
	assert.Equal(t, Counts{Correct: 2, Incorrect: 1}, log.Daily()["2024-03-05"])
}

func TestLog_RoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 0, 0, 0, time.Local)
	log, mem := newTestLog(t, now)
	require.NoError(t, log.Record(context.Background(), Incorrect))

	reloaded := NewLog(mem, notify.New(), "fr")
	require.NoError(t, reloaded.Initialize(context.Background()))
	assert.Equal(t, log.Daily(), reloaded.Daily())
	assert.Equal(t, log.Hourly(), reloaded.Hourly())
}

func TestLog_PersistedShape(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 0, 0, 0, time.Local)
	log, mem := newTestLog(t, now)
	require.NoError(t, log.Record(context.Background(), Correct))

	var raw map[string]map[string]map[string]int
	require.NoError(t, json.Unmarshal(mem.Blobs["studyResults/fr"], &raw))
	// new buckets are written with both sub-keys, zero-initialized
	assert.Equal(t, map[string]int{"correct": 1, "incorrect": 0}, raw["hourly"]["14"])
	assert.Equal(t, map[string]int{"correct": 1, "incorrect": 0}, raw["daily"]["2024-03-05"])
}

func TestLog_ToleratesMissingSubKeys(t *testing.T) {
	mem := testutil.NewMemoryStorage()
	// a partial write from an older session only recorded corrects
	mem.Blobs["studyResults/fr"] = []byte(`{"hourly":{"14":{"correct":3}},"daily":{"2024-03-05":{"incorrect":2}}}`)

	log := NewLog(mem, notify.New(), "fr")
	require.NoError(t, log.Initialize(context.Background()))

	assert.Equal(t, Counts{Correct: 3, Incorrect: 0}, log.Hourly()[14])
	assert.Equal(t, Counts{Correct: 0, Incorrect: 2}, log.Daily()["2024-03-05"])
}

func TestLog_InitializeToleratesMalformedPayload(t *testing.T) {
	mem := testutil.NewMemoryStorage()
	mem.Blobs["studyResults/fr"] = []byte(`"oops"`)

	log := NewLog(mem, notify.New(), "fr")
	require.NoError(t, log.Initialize(context.Background()))
	assert.Empty(t, log.Daily())
	assert.Empty(t, log.Hourly())
}

func TestLog_HourlySkipsNonHourKeys(t *testing.T) {
	mem := testutil.NewMemoryStorage()
	mem.Blobs["studyResults/fr"] = []byte(`{"hourly":{"14":{"correct":1},"not-an-hour":{"correct":9}},"daily":{}}`)

	log := NewLog(mem, notify.New(), "fr")
	require.NoError(t, log.Initialize(context.Background()))
	hourly := log.Hourly()
	assert.Len(t, hourly, 1)
	assert.Equal(t, 1, hourly[14].Correct)
}

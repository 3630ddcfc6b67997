// Package results keeps the append-only-by-bucket log of review outcomes,
// bucketed by hour of day and by calendar day.
package results

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/mreichhoff/TrieLingual/internal/notify"
	"github.com/mreichhoff/TrieLingual/internal/storage"
)

// Outcome is a review result as persisted.
type Outcome string

const (
	Correct   Outcome = "correct"
	Incorrect Outcome = "incorrect"
)

// Counts is one bucket's tally. Loaded buckets may lack one of the fields
// when an older writer only ever recorded a single outcome kind for the
// bucket; JSON decoding treats the missing field as zero and the next write
// backfills it.
type Counts struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// Total returns the bucket's review count.
func (c Counts) Total() int {
	return c.Correct + c.Incorrect
}

type buckets struct {
	Hourly map[string]Counts `json:"hourly"`
	Daily  map[string]Counts `json:"daily"`
}

// Log records review outcomes for one language. Buckets use the local wall
// clock, not UTC: "when did you study" is a question about the user's day,
// unlike the calendar layout which normalizes to UTC for its grid.
type Log struct {
	storage  storage.Store
	notifier *notify.Notifier
	language string
	data     buckets
	now      func() time.Time
}

// NewLog creates a Log for the given language. Initialize must be called
// before use.
func NewLog(st storage.Store, notifier *notify.Notifier, language string) *Log {
	return &Log{
		storage:  st,
		notifier: notifier,
		language: language,
		data:     emptyBuckets(),
		now:      time.Now,
	}
}

func emptyBuckets() buckets {
	return buckets{Hourly: map[string]Counts{}, Daily: map[string]Counts{}}
}

func (l *Log) namespace() string {
	return "studyResults/" + l.language
}

// Initialize loads the persisted buckets, replacing in-memory state. Missing
// or malformed payloads start empty.
func (l *Log) Initialize(ctx context.Context) error {
	payload, err := l.storage.Load(ctx, l.namespace())
	if err != nil {
		return fmt.Errorf("storage.Load(%s) > %w", l.namespace(), err)
	}

	data := emptyBuckets()
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &data); err != nil {
			data = emptyBuckets()
		}
	}
	if data.Hourly == nil {
		data.Hourly = map[string]Counts{}
	}
	if data.Daily == nil {
		data.Daily = map[string]Counts{}
	}
	l.data = data
	return nil
}

// Record tallies one outcome into the current local hour and local calendar
// day, then persists.
func (l *Log) Record(ctx context.Context, outcome Outcome) error {
	now := l.now()
	hour := strconv.Itoa(now.Hour())
	day := LocalISODate(now)

	l.data.Hourly[hour] = bump(l.data.Hourly[hour], outcome)
	l.data.Daily[day] = bump(l.data.Daily[day], outcome)

	payload, err := json.Marshal(l.data)
	if err != nil {
		return fmt.Errorf("json.Marshal(study results) > %w", err)
	}
	if err := l.storage.Save(ctx, l.namespace(), payload); err != nil {
		return fmt.Errorf("storage.Save(%s) > %w", l.namespace(), err)
	}

	if l.notifier != nil {
		l.notifier.Publish(notify.Event{
			Kind:     notify.StudyResultsChanged,
			Language: l.language,
			Payload:  l.Daily(),
		})
	}
	return nil
}

func bump(counts Counts, outcome Outcome) Counts {
	if outcome == Incorrect {
		counts.Incorrect++
	} else {
		counts.Correct++
	}
	return counts
}

// Hourly returns the hour-of-day buckets keyed 0..23. Hours that were never
// studied are absent.
func (l *Log) Hourly() map[int]Counts {
	hourly := make(map[int]Counts, len(l.data.Hourly))
	for key, counts := range l.data.Hourly {
		hour, err := strconv.Atoi(key)
		if err != nil || hour < 0 || hour > 23 {
			continue
		}
		hourly[hour] = counts
	}
	return hourly
}

// Daily returns a copy of the per-day buckets keyed by local ISO date.
func (l *Log) Daily() map[string]Counts {
	daily := make(map[string]Counts, len(l.data.Daily))
	for day, counts := range l.data.Daily {
		daily[day] = counts
	}
	return daily
}

// LocalISODate formats a time as YYYY-MM-DD in its own location.
func LocalISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

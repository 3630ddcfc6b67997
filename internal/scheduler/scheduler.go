// Package scheduler implements the spaced-repetition state machine for
// flashcard reviews: exponential interval growth on correct answers,
// asymmetric reset on wrong ones.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/mreichhoff/TrieLingual/internal/studylist"
)

const millisPerDay = 24 * 60 * 60 * 1000

// Scheduler mutates study records through the store so every transition is
// persisted and announced.
type Scheduler struct {
	store *studylist.Store
	now   func() time.Time
}

// New creates a Scheduler over a study-list store.
func New(store *studylist.Store) *Scheduler {
	return &Scheduler{store: store, now: time.Now}
}

// Review applies one review outcome to the card.
//
// Correct: the due date advances by the interval the card had earned so far
// (0.5 days for a never-reviewed card), and the stored interval doubles so
// the next correct answer waits twice as long. Incorrect: the interval
// resets to 0.5 days outright and the card is immediately due again. There
// is no terminal state; cards cycle until deleted.
func (s *Scheduler) Review(ctx context.Context, key string, correct bool) (studylist.Record, error) {
	now := s.now().UnixMilli()
	record, err := s.store.Update(ctx, key, func(r *studylist.Record) {
		if !correct {
			r.NextJump = studylist.DefaultJump
			r.WrongCount++
			r.Due = now
			return
		}
		jump := r.NextJump
		if jump == 0 {
			jump = studylist.DefaultJump
		}
		r.NextJump = jump * 2
		r.RightCount++
		r.Due = now + int64(jump*millisPerDay)
	})
	if err != nil {
		return studylist.Record{}, fmt.Errorf("store.Update(%s) > %w", key, err)
	}
	return record, nil
}

// NextDue picks the next card to study from the records due at now: the one
// with the smallest due date, ties broken by shorter n-grams so short cards
// are reviewed first, then by key for determinism. It also returns how many
// cards are due in total; ok is false when none are, which is the normal
// empty condition rather than an error.
func NextDue(records map[string]studylist.Record, now time.Time) (key string, record studylist.Record, dueCount int, ok bool) {
	for candidateKey, candidate := range records {
		if !candidate.IsDue(now) {
			continue
		}
		dueCount++
		if !ok || better(candidateKey, candidate, key, record) {
			key, record, ok = candidateKey, candidate, true
		}
	}
	return key, record, dueCount, ok
}

func better(key string, candidate studylist.Record, bestKey string, best studylist.Record) bool {
	if candidate.Due != best.Due {
		return candidate.Due < best.Due
	}
	if len(candidate.Target) != len(best.Target) {
		return len(candidate.Target) < len(best.Target)
	}
	return key < bestKey
}

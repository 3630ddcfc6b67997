// Package visits counts how many times each word has been deliberately
// navigated to or searched for. Passive exposure (a word appearing in an
// example or on a card) is never counted.
package visits

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mreichhoff/TrieLingual/internal/notify"
	"github.com/mreichhoff/TrieLingual/internal/storage"
)

// Tracker keeps per-word visit counters for one language in memory, flushing
// to storage after every mutation. Counters only ever grow.
type Tracker struct {
	storage  storage.Store
	notifier *notify.Notifier
	language string
	counts   map[string]int
}

// NewTracker creates a Tracker for the given language. Initialize must be
// called before use.
func NewTracker(st storage.Store, notifier *notify.Notifier, language string) *Tracker {
	return &Tracker{
		storage:  st,
		notifier: notifier,
		language: language,
		counts:   map[string]int{},
	}
}

func (t *Tracker) namespace() string {
	return "visited/" + t.language
}

// Initialize loads the persisted counters, replacing in-memory state.
// Missing or malformed payloads start from zero.
func (t *Tracker) Initialize(ctx context.Context) error {
	payload, err := t.storage.Load(ctx, t.namespace())
	if err != nil {
		return fmt.Errorf("storage.Load(%s) > %w", t.namespace(), err)
	}

	counts := map[string]int{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &counts); err != nil {
			counts = map[string]int{}
		}
	}
	t.counts = counts
	return nil
}

// RecordVisits increments the counter for every token in the sequence; a
// trigram visit bumps all three word counters, including duplicates within
// the same call.
func (t *Tracker) RecordVisits(ctx context.Context, tokens []string) error {
	for _, token := range tokens {
		t.counts[token]++
	}

	payload, err := json.Marshal(t.counts)
	if err != nil {
		return fmt.Errorf("json.Marshal(visit counts) > %w", err)
	}
	if err := t.storage.Save(ctx, t.namespace(), payload); err != nil {
		return fmt.Errorf("storage.Save(%s) > %w", t.namespace(), err)
	}

	if t.notifier != nil {
		t.notifier.Publish(notify.Event{
			Kind:     notify.VisitedChanged,
			Language: t.language,
			Payload:  t.All(),
		})
	}
	return nil
}

// CountFor returns how often a word has been visited; zero when never.
func (t *Tracker) CountFor(token string) int {
	return t.counts[token]
}

// All returns a copy of the visit counters.
func (t *Tracker) All() map[string]int {
	all := make(map[string]int, len(t.counts))
	for token, count := range t.counts {
		all[token] = count
	}
	return all
}

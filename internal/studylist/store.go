package studylist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mreichhoff/TrieLingual/internal/notify"
	"github.com/mreichhoff/TrieLingual/internal/storage"
)

// ErrNotFound is returned when an operation references a card key that is
// not in the study list.
var ErrNotFound = errors.New("card not found in study list")

// Candidate is one proposed flashcard, typically one per dictionary sense of
// a looked-up n-gram.
type Candidate struct {
	Tokens []string
	Answer string
}

// Related pairs a key with its record for FindRelated results.
type Related struct {
	Key    string
	Record Record
}

// Store holds a language's study list in memory and flushes it to persistent
// storage synchronously after every mutation.
type Store struct {
	storage  storage.Store
	notifier *notify.Notifier
	language string
	records  map[string]Record
	now      func() time.Time
}

// NewStore creates a Store for the given language. Initialize must be called
// before use.
func NewStore(st storage.Store, notifier *notify.Notifier, language string) *Store {
	return &Store{
		storage:  st,
		notifier: notifier,
		language: language,
		records:  map[string]Record{},
		now:      time.Now,
	}
}

// Language returns the target language this store is scoped to.
func (s *Store) Language() string {
	return s.language
}

func (s *Store) namespace() string {
	return "studyList/" + s.language
}

// Initialize loads the persisted study list, replacing any in-memory state.
// A missing or malformed payload starts an empty list; subscribers from a
// previous language must re-subscribe after switching.
func (s *Store) Initialize(ctx context.Context) error {
	payload, err := s.storage.Load(ctx, s.namespace())
	if err != nil {
		return fmt.Errorf("storage.Load(%s) > %w", s.namespace(), err)
	}

	records := map[string]Record{}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &records); err != nil {
			// malformed persisted state is treated as empty, not fatal
			records = map[string]Record{}
		}
	}
	s.records = records
	return nil
}

// Get returns the record for a key.
func (s *Store) Get(key string) (Record, bool) {
	record, ok := s.records[key]
	return record, ok
}

// Contains reports whether the n-gram already has a card, using the same key
// derivation as the write path.
func (s *Store) Contains(tokens []string) bool {
	_, ok := s.records[DeriveKey(tokens)]
	return ok
}

// Len returns the number of cards in the list.
func (s *Store) Len() int {
	return len(s.records)
}

// AddCards creates a record per candidate and returns the keys that were
// actually added. A candidate whose key already exists is skipped so prior
// progress survives a re-add; a candidate with an empty answer is dropped
// since a card with nothing on its back is not worth showing. Due dates are
// offset by the candidate's batch index so same-moment cards keep a stable,
// distinct ordering.
func (s *Store) AddCards(ctx context.Context, candidates []Candidate) ([]string, error) {
	now := s.now().UnixMilli()
	var added []string
	for i, candidate := range candidates {
		key := DeriveKey(candidate.Tokens)
		if _, exists := s.records[key]; exists || candidate.Answer == "" {
			continue
		}
		s.records[key] = Record{
			Base:   candidate.Answer,
			Due:    now + int64(i),
			Target: candidate.Tokens,
			Added:  now,
		}
		added = append(added, key)
	}

	if err := s.persist(ctx); err != nil {
		return nil, err
	}
	s.emitChanged()
	return added, nil
}

// Remove deletes a card. Removing an unknown key is a no-op but still
// persists and notifies, so callers need not check existence first.
func (s *Store) Remove(ctx context.Context, key string) error {
	delete(s.records, key)
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.emitChanged()
	return nil
}

// Update applies fn to the record for key, persists and notifies. Returns
// ErrNotFound when the key is absent. This is the scheduler's mutation path.
func (s *Store) Update(ctx context.Context, key string, fn func(*Record)) (Record, error) {
	record, ok := s.records[key]
	if !ok {
		return Record{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	fn(&record)
	s.records[key] = record
	if err := s.persist(ctx); err != nil {
		return Record{}, err
	}
	s.emitChanged()
	return record, nil
}

// Replace swaps the entire study list, persists and notifies. Used by the
// snapshot import path after merging.
func (s *Store) Replace(ctx context.Context, records map[string]Record) error {
	if records == nil {
		records = map[string]Record{}
	}
	s.records = records
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.emitChanged()
	return nil
}

// All returns a copy of the study list.
func (s *Store) All() map[string]Record {
	all := make(map[string]Record, len(s.records))
	for key, record := range s.records {
		all[key] = record
	}
	return all
}

// FindRelated returns other cards whose target contains a token equal to the
// query (trimmed, case-insensitive), sorted by RightCount descending and
// truncated to limit. The excluded key is never returned.
func (s *Store) FindRelated(query, excludeKey string, limit int) []Related {
	seeking := strings.ToLower(strings.TrimSpace(query))
	var matches []Related
	for key, record := range s.records {
		if key == excludeKey {
			continue
		}
		if containsToken(record.Target, seeking) {
			matches = append(matches, Related{Key: key, Record: record})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Record.RightCount != matches[j].Record.RightCount {
			return matches[i].Record.RightCount > matches[j].Record.RightCount
		}
		return matches[i].Key < matches[j].Key
	})
	if limit >= 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// CardCount returns how many cards mention the word in their target tokens.
func (s *Store) CardCount(word string) int {
	seeking := strings.ToLower(strings.TrimSpace(word))
	count := 0
	for _, record := range s.records {
		if containsToken(record.Target, seeking) {
			count++
		}
	}
	return count
}

func containsToken(tokens []string, seeking string) bool {
	for _, token := range tokens {
		if strings.ToLower(token) == seeking {
			return true
		}
	}
	return false
}

func (s *Store) persist(ctx context.Context) error {
	payload, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("json.Marshal(study list) > %w", err)
	}
	if err := s.storage.Save(ctx, s.namespace(), payload); err != nil {
		return fmt.Errorf("storage.Save(%s) > %w", s.namespace(), err)
	}
	return nil
}

func (s *Store) emitChanged() {
	if s.notifier == nil {
		return
	}
	s.notifier.Publish(notify.Event{
		Kind:     notify.StudyListChanged,
		Language: s.language,
		Payload:  s.All(),
	})
}

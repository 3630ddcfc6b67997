// Package datasync exports and imports study-list snapshots as YAML files,
// the reconciliation path for carrying progress between devices that do not
// share a storage backend.
package datasync

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mreichhoff/TrieLingual/internal/studylist"
)

// Snapshot is one device's study list at a point in time.
type Snapshot struct {
	Language   string                      `yaml:"language"`
	ExportedAt time.Time                   `yaml:"exported_at"`
	Cards      map[string]studylist.Record `yaml:"cards"`
}

// WriteSnapshot writes the study list for a language to path.
func WriteSnapshot(path, language string, records map[string]studylist.Record) error {
	snapshot := Snapshot{
		Language:   language,
		ExportedAt: time.Now().UTC(),
		Cards:      records,
	}

	payload, err := yaml.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("yaml.Marshal(snapshot) > %w", err)
	}
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

// ReadSnapshot loads a snapshot file.
func ReadSnapshot(path string) (*Snapshot, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", path, err)
	}
	return &snapshot, nil
}

// Import merges a snapshot into the store: incoming cards win when absent
// locally or at least as practiced as the local copy, then the merged list
// is persisted. Importing a snapshot for a different language is refused
// rather than silently mixing vocabularies.
func Import(ctx context.Context, store *studylist.Store, snapshot *Snapshot) error {
	if snapshot.Language != store.Language() {
		return fmt.Errorf("snapshot language %q does not match store language %q", snapshot.Language, store.Language())
	}

	merged := studylist.MergeStudyLists(store.All(), snapshot.Cards)
	if err := store.Replace(ctx, merged); err != nil {
		return fmt.Errorf("store.Replace() > %w", err)
	}
	return nil
}

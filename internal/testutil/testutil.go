// Package testutil provides shared test helpers: an in-memory storage fake
// and config file fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// MemoryStorage is an in-memory storage.Store for tests. It records every
// save so tests can assert on flush counts and on the exact persisted bytes.
type MemoryStorage struct {
	Blobs map[string][]byte
	Saves int
	// FailSave, when set, is returned by the next Save call.
	FailSave error
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{Blobs: map[string][]byte{}}
}

// Load implements storage.Store.
func (m *MemoryStorage) Load(_ context.Context, namespace string) ([]byte, error) {
	payload, ok := m.Blobs[namespace]
	if !ok {
		return nil, nil
	}
	return payload, nil
}

// Save implements storage.Store.
func (m *MemoryStorage) Save(_ context.Context, namespace string, payload []byte) error {
	if m.FailSave != nil {
		err := m.FailSave
		m.FailSave = nil
		return err
	}
	m.Saves++
	copied := make([]byte, len(payload))
	copy(copied, payload)
	m.Blobs[namespace] = copied
	return nil
}

// SetupTestConfig writes a minimal config file pointing every path at the
// test's temporary directory and returns its path.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"data", "exports", "reports"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`language: fr
storage:
  driver: sqlite
  path: %s
outputs:
  export_directory: %s
  report_directory: %s
`,
		filepath.Join(tmpDir, "data", "trielingual.db"),
		filepath.Join(tmpDir, "exports"),
		filepath.Join(tmpDir, "reports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WriteTrieFixture writes a small trie JSON file in the data pipeline's
// shape (word nodes with a "__l" level key) and returns its path.
func WriteTrieFixture(t *testing.T, tmpDir string) string {
	t.Helper()

	trieContent := `{
  "chat": {"__l": 1, "noir": {"__l": 2}},
  "chien": {"__l": 1},
  "maison": {"__l": 2, "blanche": {"__l": 3}},
  "ornithorynque": {"__l": 6}
}`
	triePath := filepath.Join(tmpDir, "trie.json")
	require.NoError(t, os.WriteFile(triePath, []byte(trieContent), 0644))
	return triePath
}

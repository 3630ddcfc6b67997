package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mreichhoff/TrieLingual/internal/testutil"
)

func TestLoad(t *testing.T) {
	path := testutil.WriteTrieFixture(t, t.TempDir())

	ix, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, ix.Len())
	assert.ElementsMatch(t, []string{"chat", "chien", "maison", "ornithorynque"}, ix.Words())

	level, ok := ix.Level("chat")
	require.True(t, ok)
	assert.Equal(t, 1, level)

	_, ok = ix.Level("absent")
	assert.False(t, ok)

	assert.Equal(t, 6, ix.MaxLevel())
}

func TestLoad_NestedChildren(t *testing.T) {
	path := testutil.WriteTrieFixture(t, t.TempDir())

	ix, err := Load(path)
	require.NoError(t, err)

	chat := ix.Root("chat")
	require.NotNil(t, chat)
	require.Contains(t, chat.Children, "noir")
	assert.Equal(t, 2, chat.Children["noir"].Level)
	assert.Empty(t, chat.Children["noir"].Children)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.json")
	assert.Error(t, err)
}

func TestNewIndex_Nil(t *testing.T) {
	ix := NewIndex(nil)
	assert.Zero(t, ix.Len())
	assert.Zero(t, ix.MaxLevel())
}

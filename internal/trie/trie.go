// Package trie loads the external vocabulary index: a prefix tree of words
// where each node carries a difficulty level (1 = most frequent). The index
// is produced by the data pipeline and consumed read-only; fetching it over
// the network is out of scope.
package trie

import (
	"encoding/json"
	"fmt"
	"os"
)

// levelKey is the reserved key carrying a node's level in the trie JSON;
// every other key on a node is a child word.
const levelKey = "__l"

// Node is one word's entry: its level and its child words.
type Node struct {
	Level    int
	Children map[string]*Node
}

// UnmarshalJSON decodes the pipeline format, e.g.
// {"__l": 1, "noir": {"__l": 2}}.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	n.Children = map[string]*Node{}
	for key, value := range raw {
		if key == levelKey {
			if err := json.Unmarshal(value, &n.Level); err != nil {
				return fmt.Errorf("json.Unmarshal(%s) > %w", levelKey, err)
			}
			continue
		}
		child := &Node{}
		if err := json.Unmarshal(value, child); err != nil {
			return fmt.Errorf("json.Unmarshal(child %q) > %w", key, err)
		}
		n.Children[key] = child
	}
	return nil
}

// Index is the loaded vocabulary trie.
type Index struct {
	roots map[string]*Node
}

// NewIndex builds an Index from already-decoded nodes. Mostly for tests.
func NewIndex(roots map[string]*Node) *Index {
	if roots == nil {
		roots = map[string]*Node{}
	}
	return &Index{roots: roots}
}

// Load reads a trie JSON file from disk.
func Load(path string) (*Index, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}

	roots := map[string]*Node{}
	if err := json.Unmarshal(payload, &roots); err != nil {
		return nil, fmt.Errorf("json.Unmarshal(trie) > %w", err)
	}
	return &Index{roots: roots}, nil
}

// Level returns the difficulty level for a top-level word. A nil Index knows
// no words, so callers without a trie file can pass one through unchecked.
func (ix *Index) Level(word string) (int, bool) {
	if ix == nil {
		return 0, false
	}
	node, ok := ix.roots[word]
	if !ok {
		return 0, false
	}
	return node.Level, true
}

// Root returns the node for a top-level word, or nil.
func (ix *Index) Root(word string) *Node {
	if ix == nil {
		return nil
	}
	return ix.roots[word]
}

// Words returns every top-level word. Order is unspecified.
func (ix *Index) Words() []string {
	if ix == nil {
		return nil
	}
	words := make([]string, 0, len(ix.roots))
	for word := range ix.roots {
		words = append(words, word)
	}
	return words
}

// Len returns the vocabulary size.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.roots)
}

// MaxLevel returns the highest level present, or zero for an empty index.
func (ix *Index) MaxLevel() int {
	if ix == nil {
		return 0
	}
	max := 0
	for _, node := range ix.roots {
		if node.Level > max {
			max = node.Level
		}
	}
	return max
}

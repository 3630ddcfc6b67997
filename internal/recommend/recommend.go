// Package recommend suggests unvisited words worth exploring next, weighting
// each candidate by how much of its trie neighborhood the user has already
// visited relative to difficulty.
package recommend

import (
	"sort"

	"github.com/mreichhoff/TrieLingual/internal/trie"
)

// minVisitedWords is the history size below which no recommendation is made;
// with less signal than this the scores are noise.
const minVisitedWords = 5

// maxRecommendations caps the suggestion list.
const maxRecommendations = 3

// Recommend scores every unvisited word with a level inside [minLevel,
// maxLevel] and returns the top scorers, lowest level first. A word's score
// sums visits(w)/level(w) over its subtree, so words adjacent to heavily
// visited vocabulary rank highest.
func Recommend(ix *trie.Index, visited map[string]int, minLevel, maxLevel int) []string {
	if ix == nil || len(visited) < minVisitedWords {
		return nil
	}

	best := 0.0
	var result []string
	for _, word := range ix.Words() {
		node := ix.Root(word)
		if visited[word] > 0 || node.Level < minLevel || node.Level > maxLevel {
			continue
		}
		total := subtreeScore(word, node, visited)
		if total > best {
			result = []string{word}
			best = total
		} else if total == best {
			result = append(result, word)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		levelI := ix.Root(result[i]).Level
		levelJ := ix.Root(result[j]).Level
		if levelI != levelJ {
			return levelI < levelJ
		}
		return result[i] < result[j]
	})
	if len(result) > maxRecommendations {
		result = result[:maxRecommendations]
	}
	return result
}

func subtreeScore(word string, node *trie.Node, visited map[string]int) float64 {
	total := 0.0
	type entry struct {
		word string
		node *trie.Node
	}
	queue := []entry{{word: word, node: node}}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if curr.node.Level > 0 {
			total += float64(visited[curr.word]) / float64(curr.node.Level)
		}
		for childWord, childNode := range curr.node.Children {
			queue = append(queue, entry{word: childWord, node: childNode})
		}
	}
	return total
}

// Package stats derives read-only aggregations from the study stores and the
// external vocabulary index: level coverage, activity calendars and hourly
// accuracy. Everything here is a pure function of its inputs and can be
// recomputed at any time; nothing is incrementally maintained.
package stats

import (
	"sort"
	"strings"

	"github.com/mreichhoff/TrieLingual/internal/studylist"
	"github.com/mreichhoff/TrieLingual/internal/trie"
)

// maxMissingWords caps the per-level "not yet studied / visited" listings.
const maxMissingWords = 100

// LevelCoverage reports, for one difficulty level, how much of the
// vocabulary the user has studied and visited.
type LevelCoverage struct {
	Level   int `json:"level"`
	Total   int `json:"total"`
	Studied int `json:"studied"`
	Visited int `json:"visited"`
	// MissingStudied and MissingVisited list level words absent from the
	// study list / visit history, capped and sorted.
	MissingStudied []string `json:"missingStudied,omitempty"`
	MissingVisited []string `json:"missingVisited,omitempty"`
}

// Coverage partitions the vocabulary by level and counts the distinct study
// list tokens and visited words inside each partition. Study-list tokens are
// lowercased before the index lookup; visited words are recorded verbatim at
// visit time and looked up as-is.
func Coverage(ix *trie.Index, records map[string]studylist.Record, visited map[string]int) []LevelCoverage {
	type levelTotals struct {
		total   int
		words   map[string]struct{}
		studied map[string]struct{}
		visited map[string]struct{}
	}
	byLevel := map[int]*levelTotals{}
	totalsFor := func(level int) *levelTotals {
		totals, ok := byLevel[level]
		if !ok {
			totals = &levelTotals{
				words:   map[string]struct{}{},
				studied: map[string]struct{}{},
				visited: map[string]struct{}{},
			}
			byLevel[level] = totals
		}
		return totals
	}

	for _, word := range ix.Words() {
		level, _ := ix.Level(word)
		totals := totalsFor(level)
		totals.total++
		totals.words[word] = struct{}{}
	}

	studiedWords := map[string]struct{}{}
	for _, record := range records {
		for _, token := range record.Target {
			studiedWords[strings.ToLower(token)] = struct{}{}
		}
	}
	for word := range studiedWords {
		if level, ok := ix.Level(word); ok {
			totalsFor(level).studied[word] = struct{}{}
		}
	}

	for word := range visited {
		if level, ok := ix.Level(word); ok {
			totalsFor(level).visited[word] = struct{}{}
		}
	}

	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	coverage := make([]LevelCoverage, 0, len(levels))
	for _, level := range levels {
		totals := byLevel[level]
		coverage = append(coverage, LevelCoverage{
			Level:          level,
			Total:          totals.total,
			Studied:        len(totals.studied),
			Visited:        len(totals.visited),
			MissingStudied: missing(totals.words, totals.studied),
			MissingVisited: missing(totals.words, totals.visited),
		})
	}
	return coverage
}

func missing(all, have map[string]struct{}) []string {
	var words []string
	for word := range all {
		if _, ok := have[word]; !ok {
			words = append(words, word)
		}
	}
	sort.Strings(words)
	if len(words) > maxMissingWords {
		words = words[:maxMissingWords]
	}
	return words
}

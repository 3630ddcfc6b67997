// Package studylist implements the personal study list: flashcard records
// keyed by sanitized n-gram, persisted per target language.
package studylist

import "time"

// DefaultJump is the review interval, in days, assumed for a card that has
// never been answered correctly.
const DefaultJump = 0.5

// Record is one saved flashcard. Due and Added are epoch milliseconds; the
// JSON field names are the persisted wire format.
type Record struct {
	// Base is the base-language answer shown on the card back.
	Base   string   `json:"base" yaml:"base"`
	Due    int64    `json:"due" yaml:"due"`
	Target []string `json:"target" yaml:"target,flow"`
	// WrongCount and RightCount are cumulative across the card's lifetime.
	WrongCount int   `json:"wrongCount" yaml:"wrongCount"`
	RightCount int   `json:"rightCount" yaml:"rightCount"`
	Added      int64 `json:"added" yaml:"added"`
	// NextJump is the interval in days applied by the next correct answer.
	// Zero means the card has never been reviewed; DefaultJump is assumed.
	NextJump float64 `json:"nextJump,omitempty" yaml:"nextJump,omitempty"`
}

// Attempts returns the total number of reviews this card has seen.
func (r Record) Attempts() int {
	return r.RightCount + r.WrongCount
}

// IsDue reports whether the card is eligible for review at the given time.
func (r Record) IsDue(now time.Time) bool {
	return r.Due <= now.UnixMilli()
}

package studylist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   string
	}{
		{
			name:   "joins with no separator",
			tokens: []string{"bonne", "nuit"},
			want:   "bonnenuit",
		},
		{
			name:   "single token",
			tokens: []string{"chat"},
			want:   "chat",
		},
		{
			name:   "strips storage-unsafe characters",
			tokens: []string{"a.b", "c#d", "e$f", "g/h", "i[j]"},
			want:   "abcdefghij",
		},
		{
			name:   "strips repeated occurrences anywhere",
			tokens: []string{"..#", "$x$", "[[y]]"},
			want:   "xy",
		},
		{
			name:   "case preserved",
			tokens: []string{"Bonjour"},
			want:   "Bonjour",
		},
		{
			name:   "empty sequence",
			tokens: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveKey(tt.tokens)
			assert.Equal(t, tt.want, got)
			// deterministic: deriving twice gives the same key
			assert.Equal(t, got, DeriveKey(tt.tokens))
		})
	}
}

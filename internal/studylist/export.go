package studylist

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Export writes the study list as plain text, one card per line, with the
// joined target tokens and the answer separated by ";". Literal ";"
// characters are stripped from both fields rather than escaped; this is a
// documented lossy limitation of the format. Lines are ordered by key so
// repeated exports of the same list are byte-identical.
func Export(w io.Writer, records map[string]Record) error {
	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		record := records[key]
		front := strings.ReplaceAll(JoinTokens(record.Target), ";", "")
		back := strings.ReplaceAll(record.Base, ";", "")
		if _, err := fmt.Fprintf(w, "%s;%s\n", front, back); err != nil {
			return fmt.Errorf("fmt.Fprintf(export line) > %w", err)
		}
	}
	return nil
}

var punctuationTokens = map[string]struct{}{
	".": {}, ",": {}, ":": {}, "!": {}, "?": {}, "'": {}, "’": {},
}

// JoinTokens renders an n-gram the way it is shown to the user: tokens
// separated by single spaces, except no space before punctuation tokens.
func JoinTokens(tokens []string) string {
	var b strings.Builder
	for i, token := range tokens {
		if _, punct := punctuationTokens[token]; i > 0 && !punct {
			b.WriteByte(' ')
		}
		b.WriteString(token)
	}
	return b.String()
}

package studylist

import "strings"

// keyStripper removes the characters that are unsafe in persisted storage
// paths. Each occurrence is dropped, not replaced.
var keyStripper = strings.NewReplacer(
	".", "",
	"#", "",
	"$", "",
	"/", "",
	"[", "",
	"]", "",
)

// DeriveKey derives the storage key for an n-gram: tokens concatenated with
// no separator, then sanitized. The same token sequence always produces the
// same key, and the derivation must be used on both write and lookup paths.
func DeriveKey(tokens []string) string {
	return keyStripper.Replace(strings.Join(tokens, ""))
}

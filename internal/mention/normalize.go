package mention

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes text into the comparable token form used for alias
// keys and transcript tokens. It lowercases the input, maps each of '_', '.'
// and '@' to a space, drops every other character that is not a lowercase
// ASCII letter, digit, or whitespace, and collapses whitespace runs into
// single spaces with no leading or trailing space.
//
// The function is total and idempotent; empty input yields empty output.
//
// Normalization is deliberately ASCII-only: accented characters and
// non-Latin scripts are dropped rather than transliterated, so names written
// entirely in such scripts produce no usable alias. See [BuildAliases].
func Normalize(text string) string {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r == '_' || r == '.' || r == '@':
			b.WriteByte(' ')
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

package internal

import (
	"regexp"
	"strings"
)

// TranslatePattern converts a key glob pattern into an anchored regular
// expression. The glob dialect is the one the keys command speaks:
//
//   - `?` matches exactly one character
//   - `*` matches one or more characters
//   - a backslash escapes the following character
//
// The pattern is implicitly anchored at both ends, so matching is always
// against the full key string.
func TranslatePattern(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '\\':
			// escaped character loses any wildcard meaning
			if i+1 < len(runes) {
				i++
				b.WriteString(regexp.QuoteMeta(string(runes[i])))
			} else {
				b.WriteString(regexp.QuoteMeta(`\`))
			}
		case '?':
			b.WriteString(".")
		case '*':
			b.WriteString(".+")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	b.WriteString("$")
	return regexp.Compile(b.String())
}

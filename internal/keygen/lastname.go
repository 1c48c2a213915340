// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keygen

import (
	"regexp"
	"strings"
)

// FallbackSurname substitutes when no usable surname can be extracted.
const FallbackSurname = "unknown"

// andSepRe splits a BibTeX author list on the literal " and " separator,
// case-insensitively.
var andSepRe = regexp.MustCompile(`(?i)\s+and\s+`)

// ExtractLastname derives a lowercase surname token from a raw author-list
// field. Only the first author is considered. "Surname, Given" forms take
// the text before the comma; otherwise the last whitespace-separated word is
// the surname. Non-ASCII-letter characters are stripped. The result always
// matches [a-z]+: empty or unusable input yields FallbackSurname.
func ExtractLastname(authorField string) string {
	if authorField == "" {
		return FallbackSurname
	}
	first := strings.TrimSpace(andSepRe.Split(authorField, 2)[0])

	var last string
	if i := strings.IndexByte(first, ','); i >= 0 {
		last = first[:i]
	} else {
		words := strings.Fields(first)
		if len(words) == 0 {
			return FallbackSurname
		}
		last = words[len(words)-1]
	}

	var b strings.Builder
	for _, r := range last {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	if b.Len() == 0 {
		return FallbackSurname
	}
	return b.String()
}

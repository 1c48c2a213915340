// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keygen

import (
	"strings"
	"unicode"

	"github.com/pdiddy/bibnorm/pkg/types"
)

// Tagger is the part-of-speech collaborator consumed by Abbreviate. A nil
// result (or a result with no noun/adjective tokens) leaves the token list
// unrefined; implementations must not panic through Tag.
type Tagger interface {
	Tag(tokens []string) []types.TaggedToken
}

// stopWords is the closed set of words carrying no abbreviation value.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true,
	"and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
	"is": true, "are": true, "was": true, "were": true,
}

// Abbreviate derives a short token (at most 3 characters) from a title's
// content words, used to break key collisions. The window [n-2:n] selects at
// most two content words; escalating calls with n = 2, 4, 8, ... walk the
// window rightward through the list. Tokens of length <= 3 and pre-existing
// all-caps acronyms render fully uppercased, longer tokens contribute their
// lowercased first character. Returns "" when the title has no content words
// or the window falls past the end of the list. Never fails.
func Abbreviate(title string, n int, tagger Tagger) string {
	words := contentWords(title)
	if len(words) == 0 {
		return ""
	}

	if tagger != nil {
		if refined := refineByPOS(words, tagger); len(refined) > 0 {
			words = refined
		}
	}

	lo := n - 2
	hi := n
	if lo < 0 {
		lo = 0
	}
	if lo > len(words) {
		lo = len(words)
	}
	if hi > len(words) {
		hi = len(words)
	}

	var b strings.Builder
	for _, w := range words[lo:hi] {
		runes := []rune(w)
		if len(runes) <= 3 || w == strings.ToUpper(w) {
			b.WriteString(strings.ToUpper(w))
		} else {
			b.WriteRune(unicode.ToLower(runes[0]))
		}
	}

	abbr := []rune(b.String())
	if len(abbr) > 3 {
		abbr = abbr[:3]
	}
	return string(abbr)
}

// contentWords lowercases the title, converts punctuation and symbols to
// spaces, splits on whitespace, and drops stop words and single-character
// tokens.
func contentWords(title string) []string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return ' '
		}
		return unicode.ToLower(r)
	}, title)

	var words []string
	for _, w := range strings.Fields(clean) {
		if stopWords[w] || len(w) <= 1 {
			continue
		}
		words = append(words, w)
	}
	return words
}

// refineByPOS re-tags the content words and keeps only those tagged as a
// common noun, adjective, or proper noun. An empty result means the tagging
// gave nothing usable and the caller keeps the unrefined list.
func refineByPOS(words []string, tagger Tagger) []string {
	var refined []string
	for _, tok := range tagger.Tag(words) {
		switch tok.Tag {
		case types.TagCommonNoun, types.TagAdjective, types.TagProperNoun:
			refined = append(refined, tok.Text)
		}
	}
	return refined
}

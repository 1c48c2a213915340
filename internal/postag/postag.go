// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package postag provides the optional part-of-speech tagging collaborator
// used to refine abbreviation tokens. Two backends implement the same
// interface: a prose-based English tagger and a no-op pass-through. Failure
// to acquire or run the real tagger selects no-op behavior; tagging never
// propagates an error to the caller.
package postag

import (
	"strings"

	prose "github.com/jdkato/prose/v2"

	"github.com/pdiddy/bibnorm/pkg/types"
)

// Tagger assigns part-of-speech tags to a token list. Implementations
// return nil when nothing usable can be produced.
type Tagger interface {
	Tag(tokens []string) []types.TaggedToken
}

// New returns the tagger for kind. TaggerOff selects the no-op backend;
// anything else selects the prose backend.
func New(kind types.TaggerKind) Tagger {
	if kind == types.TaggerOff {
		return Noop{}
	}
	return &Prose{}
}

// Noop is the pass-through backend: it tags nothing, so abbreviation keeps
// its stop-word filtered token list unchanged.
type Noop struct{}

// Tag returns nil.
func (Noop) Tag([]string) []types.TaggedToken { return nil }

// Prose tags tokens with the prose English POS model.
type Prose struct{}

// Tag joins tokens with spaces, runs the prose tagger, and maps Penn
// Treebank tags onto the small vocabulary abbreviation cares about. Any
// error or panic inside prose yields nil, which callers treat as
// "tagger unavailable".
func (*Prose) Tag(tokens []string) (tagged []types.TaggedToken) {
	if len(tokens) == 0 {
		return nil
	}
	defer func() {
		if recover() != nil {
			tagged = nil
		}
	}()

	doc, err := prose.NewDocument(strings.Join(tokens, " "),
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err != nil {
		return nil
	}

	for _, tok := range doc.Tokens() {
		tagged = append(tagged, types.TaggedToken{Text: tok.Text, Tag: canonicalTag(tok.Tag)})
	}
	return tagged
}

// canonicalTag maps a Penn Treebank tag to the abbreviation vocabulary.
func canonicalTag(tag string) string {
	switch tag {
	case "NN", "NNS":
		return types.TagCommonNoun
	case "JJ", "JJR", "JJS":
		return types.TagAdjective
	case "NNP", "NNPS":
		return types.TagProperNoun
	default:
		return types.TagOther
	}
}

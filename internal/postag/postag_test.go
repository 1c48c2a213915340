// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package postag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/bibnorm/pkg/types"
)

func TestNewSelectsBackend(t *testing.T) {
	assert.IsType(t, Noop{}, New(types.TaggerOff))
	assert.IsType(t, &Prose{}, New(types.TaggerProse))
	// Unrecognized kinds fall through to the real tagger.
	assert.IsType(t, &Prose{}, New(types.TaggerKind("")))
}

func TestNoopTagsNothing(t *testing.T) {
	assert.Nil(t, Noop{}.Tag([]string{"deep", "learning"}))
}

func TestProseEmptyInput(t *testing.T) {
	assert.Nil(t, (&Prose{}).Tag(nil))
	assert.Nil(t, (&Prose{}).Tag([]string{}))
}

func TestProseTagsWithinVocabulary(t *testing.T) {
	tokens := []string{"deep", "learning", "networks"}
	tagged := (&Prose{}).Tag(tokens)

	// The model's choices may drift between versions; the contract is that
	// every tag stays inside the fixed vocabulary and text is preserved.
	vocab := map[string]bool{
		types.TagCommonNoun: true,
		types.TagAdjective:  true,
		types.TagProperNoun: true,
		types.TagOther:      true,
	}
	for _, tok := range tagged {
		assert.True(t, vocab[tok.Tag], "tag %q outside vocabulary", tok.Tag)
		assert.NotEmpty(t, tok.Text)
	}
}

func TestCanonicalTag(t *testing.T) {
	tests := []struct {
		penn string
		want string
	}{
		{"NN", types.TagCommonNoun},
		{"NNS", types.TagCommonNoun},
		{"JJ", types.TagAdjective},
		{"JJR", types.TagAdjective},
		{"JJS", types.TagAdjective},
		{"NNP", types.TagProperNoun},
		{"NNPS", types.TagProperNoun},
		{"VB", types.TagOther},
		{"DT", types.TagOther},
		{"", types.TagOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, canonicalTag(tt.penn), "canonicalTag(%q)", tt.penn)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keygen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLastname(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "comma form takes text before comma",
			in:   "Smith, John",
			want: "smith",
		},
		{
			name: "space form takes last word",
			in:   "John Smith",
			want: "smith",
		},
		{
			name: "only first author counts",
			in:   "Smith, John and Jones, Alice",
			want: "smith",
		},
		{
			name: "and separator is case-insensitive",
			in:   "John Smith AND Alice Jones",
			want: "smith",
		},
		{
			name: "non-letters are stripped",
			in:   "O'Brien-Smith, P.",
			want: "obriensmith",
		},
		{
			name: "result is lowercased",
			in:   "VASWANI, Ashish",
			want: "vaswani",
		},
		{
			name: "empty input falls back",
			in:   "",
			want: "unknown",
		},
		{
			name: "whitespace only falls back",
			in:   "   ",
			want: "unknown",
		},
		{
			name: "punctuation only falls back",
			in:   "???, !!!",
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractLastname(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, `^[a-z]+$`, got)
		})
	}
}

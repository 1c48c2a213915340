// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keygen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips braces",
			in:   "A {Deep} Learning {Approach}",
			want: "A Deep Learning Approach",
		},
		{
			name: "collapses whitespace runs",
			in:   "Question   Answering\twith \n Transformers",
			want: "Question Answering with Transformers",
		},
		{
			name: "trims leading and trailing space",
			in:   "  Attention Is All You Need  ",
			want: "Attention Is All You Need",
		},
		{
			name: "keeps hyphens and apostrophes",
			in:   "On Zipf's Law in Multi-Task Learning",
			want: "On Zipf's Law in Multi-Task Learning",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
		{
			name: "all-markup input",
			in:   "{{}{}}",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTitle(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeTitle(got), "must be idempotent")
			assert.NotContains(t, got, "{")
			assert.NotContains(t, got, "}")
		})
	}
}

func TestNormalizeYear(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2020", "2020"},
		{" 1999 ", "1999"},
		{"0000", "0000"},
		{"", "0000"},
		{"99", "0000"},
		{"20000", "0000"},
		{"circa 1990", "0000"},
		{"199x", "0000"},
		{"２０２０", "0000"}, // full-width digits are not ASCII
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeYear(tt.in), "NormalizeYear(%q)", tt.in)
	}
}

package main

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pdiddy/bibnorm/pkg/types"
)

func TestPrintEntriesTruncatesLongTitlesByRune(t *testing.T) {
	// 60 two-byte runes: byte-based truncation would cut mid-rune.
	long := strings.Repeat("ü", 60)
	entries := []types.CatalogEntry{{
		DerivedKey: "muller2020",
		EntryType:  "article",
		Title:      long,
		Year:       "2020",
		SourceFile: "refs.bib",
	}}

	var out bytes.Buffer
	printEntries(&out, entries)

	if !utf8.ValidString(out.String()) {
		t.Error("listing contains invalid UTF-8")
	}
	if !strings.Contains(out.String(), strings.Repeat("ü", 47)+"...") {
		t.Errorf("title not truncated at 47 runes:\n%s", out.String())
	}
	if strings.Contains(out.String(), long) {
		t.Error("over-long title should have been truncated")
	}
}

func TestPrintEntriesEmpty(t *testing.T) {
	var out bytes.Buffer
	printEntries(&out, nil)
	if !strings.Contains(out.String(), "No entries found.") {
		t.Errorf("output = %q", out.String())
	}
}

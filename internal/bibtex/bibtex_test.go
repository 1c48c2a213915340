// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibtex

import (
	"strings"
	"testing"
)

const sample = `% bibliography for the survey
@string{acl = {Association for Computational Linguistics}}

@article{vaswani17,
  title = {Attention Is All You Need},
  author = {Vaswani, Ashish and Shazeer, Noam},
  YEAR = {2017},
  pages = {5998--6008}
}

@inproceedings{devlin19,
  title = "BERT: Pre-training of Deep Bidirectional Transformers",
  author = {Devlin, Jacob},
  year = 2019
}
`

func TestParseBlocks(t *testing.T) {
	lib, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(lib.Blocks) != 4 {
		t.Fatalf("len(Blocks) = %d, want 4", len(lib.Blocks))
	}

	if lib.Blocks[0].Record != nil || lib.Blocks[0].Raw != "% bibliography for the survey" {
		t.Errorf("block 0 = %+v, want comment passthrough", lib.Blocks[0])
	}
	if lib.Blocks[1].Record != nil || !strings.HasPrefix(lib.Blocks[1].Raw, "@string{") {
		t.Errorf("block 1 = %+v, want @string passthrough", lib.Blocks[1])
	}
	if lib.Blocks[2].Record == nil || lib.Blocks[2].Record.Key != "vaswani17" {
		t.Errorf("block 2 should be record vaswani17, got %+v", lib.Blocks[2])
	}
	if lib.Blocks[3].Record == nil || lib.Blocks[3].Record.Key != "devlin19" {
		t.Errorf("block 3 should be record devlin19, got %+v", lib.Blocks[3])
	}

	if len(lib.Duplicates) != 0 {
		t.Errorf("Duplicates = %v, want none", lib.Duplicates)
	}
}

func TestParseRecordFields(t *testing.T) {
	lib, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	records := lib.Records()
	if len(records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(records))
	}

	rec := records[0]
	if rec.EntryType != "article" {
		t.Errorf("EntryType = %q, want %q", rec.EntryType, "article")
	}
	if rec.StartLine != 3 {
		t.Errorf("StartLine = %d, want 3", rec.StartLine)
	}

	wantNames := []string{"title", "author", "YEAR", "pages"}
	if len(rec.Fields) != len(wantNames) {
		t.Fatalf("len(Fields) = %d, want %d", len(rec.Fields), len(wantNames))
	}
	for i, name := range wantNames {
		if rec.Fields[i].Name != name {
			t.Errorf("Fields[%d].Name = %q, want %q (case and order preserved)", i, rec.Fields[i].Name, name)
		}
	}

	// Case-insensitive lookup finds the uppercase YEAR field.
	year, ok := rec.Field("year")
	if !ok || year != "2017" {
		t.Errorf("Field(year) = %q, %v; want 2017, true", year, ok)
	}

	// Quoted and bare values lose their delimiters.
	title, _ := records[1].Field("title")
	if title != "BERT: Pre-training of Deep Bidirectional Transformers" {
		t.Errorf("quoted title = %q", title)
	}
	bareYear, _ := records[1].Field("year")
	if bareYear != "2019" {
		t.Errorf("bare year = %q, want 2019", bareYear)
	}
}

func TestParseNestedBraces(t *testing.T) {
	src := `@article{k1,
  title = {The {BERT} Model in {NLP}},
  author = {Lee, Kim}
}
`
	lib, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	title, _ := lib.Records()[0].Field("title")
	if title != "The {BERT} Model in {NLP}" {
		t.Errorf("title = %q, want nested braces preserved in value", title)
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	src := `@article{abc123,
  title = {First},
  year = {2001}
}
@article{abc123,
  title = {Second},
  year = {2002}
}
@article{other,
  title = {Third}
}
@article{abc123,
  title = {Fourth}
}
`
	lib, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(lib.Duplicates) != 2 {
		t.Fatalf("len(Duplicates) = %d, want 2", len(lib.Duplicates))
	}
	if lib.Duplicates[0].Key != "abc123" || lib.Duplicates[0].Line != 4 {
		t.Errorf("Duplicates[0] = %+v, want abc123 at line 4", lib.Duplicates[0])
	}
	if lib.Duplicates[1].Key != "abc123" || lib.Duplicates[1].Line != 11 {
		t.Errorf("Duplicates[1] = %+v, want abc123 at line 11", lib.Duplicates[1])
	}
}

func TestParseDuplicateFieldNamesPreserved(t *testing.T) {
	src := `@article{k1,
  note = {first note},
  NOTE = {second note}
}
`
	lib, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rec := lib.Records()[0]
	if len(rec.Fields) != 2 {
		t.Fatalf("len(Fields) = %d, want 2 (duplicates pass through independently)", len(rec.Fields))
	}
	// Lookup returns the first match.
	note, _ := rec.Field("note")
	if note != "first note" {
		t.Errorf("Field(note) = %q, want first match", note)
	}
}

func TestParseUnterminatedEntry(t *testing.T) {
	src := "@article{k1,\n  title = {Unclosed\n"
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("Parse should fail on an unterminated block")
	}
}

func TestParseMultilinePassthrough(t *testing.T) {
	src := "\n\nsome free text\nspanning two lines\n\n@misc{m1, title = {T}}\n"
	lib, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(lib.Blocks) != 2 {
		t.Fatalf("len(Blocks) = %d, want 2", len(lib.Blocks))
	}
	if lib.Blocks[0].Raw != "some free text\nspanning two lines" {
		t.Errorf("passthrough raw = %q", lib.Blocks[0].Raw)
	}
	if lib.Blocks[0].StartLine != 2 {
		t.Errorf("passthrough StartLine = %d, want 2", lib.Blocks[0].StartLine)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the value objects shared across bibnorm stages:
// parsed bibliography blocks, key provenance, and stage configuration.
package types

import "strings"

// Field is one field of a bibliography record. The name keeps its original
// case and position; lookup is case-insensitive (see Record.Field). Duplicate
// field names within one record are preserved independently.
type Field struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// Record is one bibliography entry: a type tag, the original citation key,
// and the ordered field list as it appeared in the source.
type Record struct {
	// EntryType is the entry tag without the leading "@" (e.g. "article").
	EntryType string `json:"entry_type" yaml:"entry_type"`

	// Key is the citation key from the source, kept for conflict reporting.
	Key string `json:"key" yaml:"key"`

	// StartLine is the zero-based line where the entry opens. It is the
	// record's identity across the derive and emit passes.
	StartLine int `json:"start_line" yaml:"start_line"`

	// Fields lists the entry's fields in source order.
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field returns the value of the first field whose name matches name
// case-insensitively, and whether such a field exists.
func (r *Record) Field(name string) (string, bool) {
	for _, f := range r.Fields {
		if strings.EqualFold(f.Name, name) {
			return f.Value, true
		}
	}
	return "", false
}

// Block is one parsed unit of the source file. Record is nil for passthrough
// blocks (comments, string macros, preambles, free text), which carry their
// original text in Raw and are rewritten verbatim.
type Block struct {
	// StartLine is the zero-based line where the block begins.
	StartLine int

	// Raw is the original source text of a passthrough block, without a
	// trailing newline. Empty for record blocks.
	Raw string

	// Record is the parsed entry, or nil for passthrough blocks.
	Record *Record
}

// DuplicateKey reports a citation key that appears more than once in the
// source file. Line is zero-based; user-facing reports print Line+1.
type DuplicateKey struct {
	Key  string `json:"key" yaml:"key"`
	Line int    `json:"line" yaml:"line"`
}

// KeyProvenance records where a derived key came from: the canonical title,
// the original citation key, and the source line of the contributing record.
type KeyProvenance struct {
	Title   string `json:"title" yaml:"title"`
	OrigKey string `json:"orig_key" yaml:"orig_key"`
	Line    int    `json:"line" yaml:"line"`
}

// Part-of-speech tags produced by the tagging collaborator.
const (
	TagCommonNoun = "common_noun"
	TagAdjective  = "adjective"
	TagProperNoun = "proper_noun"
	TagOther      = "other"
)

// TaggedToken is one token with its part-of-speech tag.
type TaggedToken struct {
	Text string
	Tag  string
}

// CatalogEntry is one kept record as stored in the catalog database.
type CatalogEntry struct {
	// DerivedKey is the collision-resolved key assigned on the run.
	DerivedKey string `json:"derived_key" yaml:"derived_key"`

	// OrigKey is the citation key the record carried in the source.
	OrigKey string `json:"orig_key" yaml:"orig_key"`

	// Title is the canonical (markup-stripped) title.
	Title string `json:"title" yaml:"title"`

	// Author is the raw author field from the source.
	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Year is the validated four-digit year, or "0000".
	Year string `json:"year" yaml:"year"`

	// EntryType is the entry tag (e.g. "article").
	EntryType string `json:"entry_type" yaml:"entry_type"`

	// SourceFile is the input file the record was kept from.
	SourceFile string `json:"source_file" yaml:"source_file"`

	// RunAt is the RFC3339 timestamp of the formatting run.
	RunAt string `json:"run_at" yaml:"run_at"`
}

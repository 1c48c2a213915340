// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex parses a BibTeX source file into an ordered block sequence.
// Entries become typed records with their field order and case preserved;
// @string, @preamble, @comment, and free text become passthrough blocks that
// carry their original text for verbatim rewriting. The parser also detects
// citation keys that already collide in the source.
package bibtex

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/bibnorm/pkg/types"
)

// Library is the parsed form of one BibTeX file: the ordered block sequence
// and every pre-existing duplicate citation key.
type Library struct {
	Blocks     []types.Block
	Duplicates []types.DuplicateKey
}

// Records returns the record blocks in order.
func (l *Library) Records() []*types.Record {
	var records []*types.Record
	for _, b := range l.Blocks {
		if b.Record != nil {
			records = append(records, b.Record)
		}
	}
	return records
}

// ParseFile parses the BibTeX file at path.
func ParseFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	lib, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return lib, nil
}

// Parse reads BibTeX source from r and returns its block sequence. Lines
// are numbered from zero; user-facing reports print line+1.
func Parse(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	lib := &Library{}

	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		if !strings.HasPrefix(trimmed, "@") {
			block, next := scanPassthrough(lines, i)
			if block != nil {
				lib.Blocks = append(lib.Blocks, *block)
			}
			i = next
			continue
		}

		text, next, err := scanAtBlock(lines, i)
		if err != nil {
			return nil, err
		}

		// An "@" line that never opens a brace is not an entry at all.
		if strings.IndexByte(text, '{') < 0 {
			lib.Blocks = append(lib.Blocks, types.Block{StartLine: i, Raw: text})
			i = next
			continue
		}

		kind := blockKind(text)
		switch kind {
		case "string", "preamble", "comment":
			lib.Blocks = append(lib.Blocks, types.Block{StartLine: i, Raw: text})
		default:
			rec, err := parseRecord(text, i)
			if err != nil {
				return nil, err
			}
			lib.Blocks = append(lib.Blocks, types.Block{StartLine: i, Record: rec})
		}
		i = next
	}

	lib.Duplicates = findDuplicates(lib.Records())
	return lib, nil
}

// scanPassthrough collects the run of non-entry lines starting at i,
// stripped of leading and trailing blank lines. It returns nil when the run
// is blank, and the index of the next unconsumed line.
func scanPassthrough(lines []string, i int) (*types.Block, int) {
	end := i
	for end < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[end]), "@") {
		end++
	}

	lo, hi := i, end
	for lo < hi && strings.TrimSpace(lines[lo]) == "" {
		lo++
	}
	for hi > lo && strings.TrimSpace(lines[hi-1]) == "" {
		hi--
	}
	if lo == hi {
		return nil, end
	}
	return &types.Block{StartLine: lo, Raw: strings.Join(lines[lo:hi], "\n")}, end
}

// scanAtBlock collects the text of an @-block starting at line i through its
// balancing close brace, which may span multiple lines. It returns the block
// text and the index of the next unconsumed line.
func scanAtBlock(lines []string, i int) (string, int, error) {
	depth := 0
	opened := false
	var collected []string

	for j := i; j < len(lines); j++ {
		collected = append(collected, lines[j])
		for _, r := range lines[j] {
			switch r {
			case '{':
				depth++
				opened = true
			case '}':
				depth--
			}
		}
		if opened && depth <= 0 {
			return strings.Join(collected, "\n"), j + 1, nil
		}
	}

	if !opened {
		// An @-line with no brace at all: pass it through as-is.
		return lines[i], i + 1, nil
	}
	return "", 0, fmt.Errorf("unterminated block starting at line %d", i+1)
}

// blockKind returns the lowercased tag between "@" and the opening brace,
// or "" when the text is not a well-formed @-block.
func blockKind(text string) string {
	at := strings.IndexByte(text, '@')
	brace := strings.IndexByte(text, '{')
	if at < 0 || brace < 0 || brace < at {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(text[at+1 : brace]))
}

// parseRecord parses one entry block into a Record.
func parseRecord(text string, startLine int) (*types.Record, error) {
	at := strings.IndexByte(text, '@')
	brace := strings.IndexByte(text, '{')
	if at < 0 || brace < 0 || brace < at {
		return nil, fmt.Errorf("malformed entry at line %d", startLine+1)
	}
	entryType := strings.ToLower(strings.TrimSpace(text[at+1 : brace]))

	end := strings.LastIndexByte(text, '}')
	if end < brace {
		return nil, fmt.Errorf("malformed entry at line %d", startLine+1)
	}
	body := text[brace+1 : end]

	comma := strings.IndexByte(body, ',')
	if comma < 0 {
		// Entry with a key and no fields.
		return &types.Record{
			EntryType: entryType,
			Key:       strings.TrimSpace(body),
			StartLine: startLine,
		}, nil
	}

	rec := &types.Record{
		EntryType: entryType,
		Key:       strings.TrimSpace(body[:comma]),
		StartLine: startLine,
	}

	fields, err := parseFields(body[comma+1:], startLine)
	if err != nil {
		return nil, err
	}
	rec.Fields = fields
	return rec, nil
}

// parseFields parses "name = value" pairs separated by commas. Values are
// brace-delimited (braces nest), quote-delimited, or bare (numbers, macro
// names); delimiters are stripped from the stored value.
func parseFields(body string, startLine int) ([]types.Field, error) {
	var fields []types.Field
	pos := 0

	for {
		pos = skipSpace(body, pos)
		if pos >= len(body) {
			return fields, nil
		}

		eq := strings.IndexByte(body[pos:], '=')
		if eq < 0 {
			// Trailing junk after the last field (commonly a lone comma).
			if strings.TrimSpace(body[pos:]) != "" {
				return nil, fmt.Errorf("malformed field in entry at line %d", startLine+1)
			}
			return fields, nil
		}
		name := strings.TrimSpace(body[pos : pos+eq])
		if name == "" {
			return nil, fmt.Errorf("field with empty name in entry at line %d", startLine+1)
		}
		pos += eq + 1
		pos = skipSpace(body, pos)

		value, next, err := parseValue(body, pos, startLine)
		if err != nil {
			return nil, err
		}
		fields = append(fields, types.Field{Name: name, Value: value})
		pos = next

		pos = skipSpace(body, pos)
		if pos < len(body) && body[pos] == ',' {
			pos++
		}
	}
}

// parseValue reads one field value starting at pos and returns it with the
// outer delimiters stripped, plus the position after the value.
func parseValue(body string, pos, startLine int) (string, int, error) {
	if pos >= len(body) {
		return "", pos, nil
	}

	switch body[pos] {
	case '{':
		depth := 0
		for i := pos; i < len(body); i++ {
			switch body[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return body[pos+1 : i], i + 1, nil
				}
			}
		}
		return "", 0, fmt.Errorf("unbalanced braces in entry at line %d", startLine+1)
	case '"':
		for i := pos + 1; i < len(body); i++ {
			if body[i] == '"' {
				return body[pos+1 : i], i + 1, nil
			}
		}
		return "", 0, fmt.Errorf("unterminated quoted value in entry at line %d", startLine+1)
	default:
		end := pos
		for end < len(body) && body[end] != ',' {
			end++
		}
		return strings.TrimSpace(body[pos:end]), end, nil
	}
}

// skipSpace advances pos past whitespace.
func skipSpace(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t' || s[pos] == '\n' || s[pos] == '\r') {
		pos++
	}
	return pos
}

// findDuplicates returns one DuplicateKey per repeat occurrence of a
// citation key already used by an earlier record.
func findDuplicates(records []*types.Record) []types.DuplicateKey {
	seen := make(map[string]bool)
	var dups []types.DuplicateKey
	for _, rec := range records {
		if rec.Key == "" {
			continue
		}
		if seen[rec.Key] {
			dups = append(dups, types.DuplicateKey{Key: rec.Key, Line: rec.StartLine})
			continue
		}
		seen[rec.Key] = true
	}
	return dups
}

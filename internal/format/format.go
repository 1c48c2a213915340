// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format implements the deduplication and rewrite driver. Pass 1
// walks the parsed block sequence once, deduplicating records by canonical
// title and deriving a collision-free citation key for each kept record.
// Pass 2 emits the rewritten file: kept records as their formatted
// replacement, duplicates as nothing, and every other block verbatim.
package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/bibnorm/internal/bibtex"
	"github.com/pdiddy/bibnorm/internal/keygen"
	"github.com/pdiddy/bibnorm/pkg/types"
)

// ReplacementIndex maps a record's start line to its formatted output text.
// A start line absent from the index marks a duplicate to drop on rewrite.
type ReplacementIndex map[int]string

// Derivation is the output of Pass 1.
type Derivation struct {
	// Usage holds every committed key with its provenance.
	Usage *keygen.UsageIndex

	// Replacements holds the formatted text for each kept record.
	Replacements ReplacementIndex

	// Kept lists the kept records in block order, for catalog ingestion.
	// SourceFile and RunAt are filled in by the caller.
	Kept []types.CatalogEntry

	// Dropped counts records excluded as title duplicates.
	Dropped int
}

// Derive runs Pass 1 over blocks: title dedup (first record with a given
// canonical title wins, case-insensitively), key derivation, and replacement
// formatting. Records are visited in block order, which makes the derived
// keys deterministic for a given input.
func Derive(blocks []types.Block, tagger keygen.Tagger) Derivation {
	d := Derivation{
		Usage:        keygen.NewUsageIndex(),
		Replacements: make(ReplacementIndex),
	}
	seenTitles := make(map[string]bool)

	for _, b := range blocks {
		rec := b.Record
		if rec == nil {
			continue
		}

		rawTitle, _ := rec.Field("title")
		title := keygen.NormalizeTitle(rawTitle)
		if seenTitles[strings.ToLower(title)] {
			d.Dropped++
			continue
		}
		seenTitles[strings.ToLower(title)] = true

		author, _ := rec.Field("author")
		rawYear, _ := rec.Field("year")
		surname := keygen.ExtractLastname(author)
		year := keygen.NormalizeYear(rawYear)

		prov := types.KeyProvenance{Title: title, OrigKey: rec.Key, Line: rec.StartLine}
		key := keygen.Derive(surname, year, title, prov, d.Usage, tagger)

		d.Replacements[rec.StartLine] = formatRecord(rec, key, title)
		d.Kept = append(d.Kept, types.CatalogEntry{
			DerivedKey: key,
			OrigKey:    rec.Key,
			Title:      title,
			Author:     author,
			Year:       year,
			EntryType:  rec.EntryType,
		})
	}
	return d
}

// formatRecord renders a kept record: entry type and derived key on the
// opening line together with the title field, every other field on its own
// indented line in original order, trailing comma trimmed from the last
// field line, closing brace on its own line.
func formatRecord(rec *types.Record, key, title string) string {
	lines := []string{fmt.Sprintf("@%s{%s, title = {%s},", rec.EntryType, key, title)}
	for _, f := range rec.Fields {
		if strings.EqualFold(f.Name, "title") {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s = {%s},", f.Name, f.Value))
	}
	if len(lines) > 1 {
		lines[len(lines)-1] = strings.TrimSuffix(lines[len(lines)-1], ",")
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

// ReportConflicts writes a diagnostic for every key shared by more than one
// kept record. Diagnostic only: conflicted records stay in the output.
func ReportConflicts(conflicts []keygen.Conflict, w io.Writer) {
	for _, c := range conflicts {
		fmt.Fprintf(w, "warning: key conflict %q\n", c.Key)
		for _, e := range c.Entries {
			fmt.Fprintf(w, "  line %d: %s (orig: %s)\n", e.Line+1, e.Title, e.OrigKey)
		}
	}
}

// Emit runs Pass 2: blocks in original order, kept records as their
// replacement text, duplicate records as nothing, passthrough blocks
// verbatim. Every emitted block ends with a line break.
func Emit(blocks []types.Block, repl ReplacementIndex, w io.Writer) error {
	for _, b := range blocks {
		if b.Record != nil {
			text, ok := repl[b.Record.StartLine]
			if !ok {
				continue
			}
			if _, err := io.WriteString(w, text+"\n"); err != nil {
				return err
			}
			continue
		}
		raw := b.Raw
		if !strings.HasSuffix(raw, "\n") {
			raw += "\n"
		}
		if _, err := io.WriteString(w, raw); err != nil {
			return err
		}
	}
	return nil
}

// DuplicateKeyError is the fatal condition: the source file already contains
// records sharing a citation key. Nothing is derived or written.
type DuplicateKeyError struct {
	Duplicates []types.DuplicateKey
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%d duplicate citation key(s) in input file", len(e.Duplicates))
}

// Options configures one formatting run.
type Options struct {
	// InputPath is the BibTeX source file.
	InputPath string

	// OutputSuffix is appended to InputPath to form the output path.
	OutputSuffix string

	// Tagger refines abbreviation tokens; nil skips refinement.
	Tagger keygen.Tagger

	// DryRun derives and reports without writing the output file.
	DryRun bool
}

// Result summarizes one formatting run.
type Result struct {
	Kept       int
	Dropped    int
	OutputPath string
	Conflicts  []keygen.Conflict
	Entries    []types.CatalogEntry
}

// Run executes a full formatting run: parse, duplicate-key check, Pass 1,
// conflict report to diag, Pass 2 to <input><suffix>. The input file is
// never modified. A pre-existing duplicate key aborts with
// *DuplicateKeyError before anything is derived or written.
func Run(opts Options, diag io.Writer) (Result, error) {
	lib, err := bibtex.ParseFile(opts.InputPath)
	if err != nil {
		return Result{}, err
	}

	if len(lib.Duplicates) > 0 {
		return Result{}, &DuplicateKeyError{Duplicates: lib.Duplicates}
	}

	d := Derive(lib.Blocks, opts.Tagger)
	conflicts := d.Usage.Conflicts()
	ReportConflicts(conflicts, diag)

	res := Result{
		Kept:       len(d.Kept),
		Dropped:    d.Dropped,
		OutputPath: opts.InputPath + opts.OutputSuffix,
		Conflicts:  conflicts,
		Entries:    d.Kept,
	}

	if opts.DryRun {
		return res, nil
	}

	out, err := os.Create(res.OutputPath)
	if err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", res.OutputPath, err)
	}
	if err := Emit(lib.Blocks, d.Replacements, out); err != nil {
		out.Close()
		return Result{}, fmt.Errorf("writing %s: %w", res.OutputPath, err)
	}
	if err := out.Close(); err != nil {
		return Result{}, fmt.Errorf("closing %s: %w", res.OutputPath, err)
	}
	return res, nil
}

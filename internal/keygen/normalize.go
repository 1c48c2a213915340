// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package keygen derives citation keys for bibliography records: it
// canonicalizes titles, extracts author surnames, validates years, and
// resolves key collisions through an escalating title abbreviation.
package keygen

import "strings"

// FallbackYear substitutes for a missing or malformed year field.
const FallbackYear = "0000"

// NormalizeTitle strips BibTeX brace markup from a raw title and collapses
// whitespace runs to single spaces. The result is the canonical title used
// for duplicate detection and display. Idempotent; an empty or all-markup
// title canonicalizes to "".
func NormalizeTitle(raw string) string {
	cleaned := strings.NewReplacer("{", "", "}", "").Replace(raw)
	return strings.Join(strings.Fields(cleaned), " ")
}

// NormalizeYear validates a raw year field. It returns the trimmed value
// when it is exactly four ASCII digits, and FallbackYear otherwise
// ("circa 1990", "99", "20000", and the empty string all fall back).
func NormalizeYear(raw string) string {
	year := strings.TrimSpace(raw)
	if len(year) != 4 {
		return FallbackYear
	}
	for i := 0; i < len(year); i++ {
		if year[i] < '0' || year[i] > '9' {
			return FallbackYear
		}
	}
	return year
}

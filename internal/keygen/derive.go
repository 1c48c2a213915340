// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keygen

import "github.com/pdiddy/bibnorm/pkg/types"

// UsageIndex tracks every derived key committed during one run together with
// the provenance of each record that ended up under it. A key holding more
// than one provenance entry is a residual conflict. The index is owned by
// the driver for the duration of a single run.
type UsageIndex struct {
	order []string
	byKey map[string][]types.KeyProvenance
}

// NewUsageIndex returns an empty index.
func NewUsageIndex() *UsageIndex {
	return &UsageIndex{byKey: make(map[string][]types.KeyProvenance)}
}

// Has reports whether key has been committed.
func (u *UsageIndex) Has(key string) bool {
	_, ok := u.byKey[key]
	return ok
}

// Register appends prov to the usage list for key, creating the list on
// first use. Keys keep first-registration order for deterministic reports.
func (u *UsageIndex) Register(key string, prov types.KeyProvenance) {
	if _, ok := u.byKey[key]; !ok {
		u.order = append(u.order, key)
	}
	u.byKey[key] = append(u.byKey[key], prov)
}

// Len returns the number of distinct committed keys.
func (u *UsageIndex) Len() int {
	return len(u.order)
}

// Conflict is a derived key shared by two or more kept records after
// escalation exhausted the title's distinguishing content.
type Conflict struct {
	Key     string                `json:"key" yaml:"key"`
	Entries []types.KeyProvenance `json:"entries" yaml:"entries"`
}

// Conflicts returns every key with more than one provenance entry, in
// first-registration order.
func (u *UsageIndex) Conflicts() []Conflict {
	var conflicts []Conflict
	for _, key := range u.order {
		if entries := u.byKey[key]; len(entries) > 1 {
			conflicts = append(conflicts, Conflict{Key: key, Entries: entries})
		}
	}
	return conflicts
}

// Derive resolves the citation key for one record and registers its
// provenance in usage. The base candidate is surname+year; on collision the
// engine appends Abbreviate(title, n) with n = 2, 4, 8, ... so each retry
// reads a window further right in the title's content words. Escalation
// stops at the first retry whose abbreviation is empty: the title has no
// more distinguishing content, and the still-colliding candidate is
// committed for the conflict report to surface. Identical input order and
// content always yield identical keys.
func Derive(surname, year, title string, prov types.KeyProvenance, usage *UsageIndex, tagger Tagger) string {
	key := surname + year
	for n := 2; usage.Has(key); n *= 2 {
		suffix := Abbreviate(title, n, tagger)
		if suffix == "" {
			break
		}
		key += suffix
	}
	usage.Register(key, prov)
	return key
}

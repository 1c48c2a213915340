// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TaggerKind selects the part-of-speech tagging backend used to refine
// abbreviation tokens.
type TaggerKind string

const (
	// TaggerProse uses the prose English POS tagger.
	TaggerProse TaggerKind = "prose"
	// TaggerOff disables tagging; abbreviation uses the stop-word
	// filtered token list unrefined.
	TaggerOff TaggerKind = "off"
)

// FormatConfig holds settings for the format stage.
type FormatConfig struct {
	// OutputSuffix is appended to the input path to form the output path
	// (default ".reformatted").
	OutputSuffix string `json:"output_suffix" yaml:"output_suffix"`

	// Tagger selects the POS tagging backend: prose or off.
	Tagger TaggerKind `json:"tagger" yaml:"tagger"`
}

// CatalogConfig holds settings for the catalog store.
type CatalogConfig struct {
	// Enabled controls whether format ingests kept records after a run.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Path is the SQLite database file (default "bibnorm.db").
	Path string `json:"path" yaml:"path"`
}

// Config groups all stage configurations.
type Config struct {
	Format  FormatConfig  `json:"format" yaml:"format"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
}

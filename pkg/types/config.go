// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConferenceConfig holds the per-year details of the proceedings being edited.
// These are the only settings expected to change from one conference to the next.
type ConferenceConfig struct {
	// Number is the conference number in Roman numerals (e.g. "XXVI").
	Number string `json:"number" yaml:"number" mapstructure:"number"`

	// Editors is the editor list in .bib form, e.g. "Pasian,~F. and Molinaro,~M.".
	Editors string `json:"editors" yaml:"editors" mapstructure:"editors"`

	// Volume is the ASP volume number, or "TBD".
	Volume string `json:"volume" yaml:"volume" mapstructure:"volume"`

	// BibFile overrides the shared database filename derived from Number.
	BibFile string `json:"bib_file,omitempty" yaml:"bib_file,omitempty" mapstructure:"bib_file"`
}

// StandardBibFile returns the shared database filename used by every paper,
// "adass<Number>references.bib" unless BibFile is set.
func (c ConferenceConfig) StandardBibFile() string {
	if c.BibFile != "" {
		return c.BibFile
	}
	if c.Number == "" {
		return ""
	}
	return "adass" + c.Number + "references.bib"
}

// RefsConfig holds settings for the reference consistency check.
type RefsConfig struct {
	// AllowBibitems accepts references defined with \bibitem in the .tex file.
	AllowBibitems bool `json:"allow_bibitems" yaml:"allow_bibitems" mapstructure:"allow_bibitems"`
}

// TrimMode selects what the trimmer does with unused database records.
type TrimMode string

const (
	TrimComment TrimMode = "comment"
	TrimDelete  TrimMode = "delete"
)

// TrimConfig holds settings for trimming the database file.
type TrimConfig struct {
	Mode TrimMode `json:"mode" yaml:"mode" mapstructure:"mode"`
}

// AuthorsConfig overrides the author-list parser tables. Empty lists keep
// the built-in defaults.
type AuthorsConfig struct {
	Particles []string `json:"particles,omitempty" yaml:"particles,omitempty" mapstructure:"particles"`
	TeamWords []string `json:"team_words,omitempty" yaml:"team_words,omitempty" mapstructure:"team_words"`
}

// PackagesConfig lists LaTeX packages the proceedings style already loads.
type PackagesConfig struct {
	Standard []string `json:"standard,omitempty" yaml:"standard,omitempty" mapstructure:"standard"`
}

// IndexConfig holds settings for the author index database.
type IndexConfig struct {
	// Path is the SQLite database file (default "authors.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// OutputFormat selects how check results are rendered.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputYAML OutputFormat = "yaml"
)

// Config groups every setting the CLI reads from refcheck.yaml.
type Config struct {
	Conference ConferenceConfig `json:"conference" yaml:"conference" mapstructure:"conference"`
	Refs       RefsConfig       `json:"refs" yaml:"refs" mapstructure:"refs"`
	Trim       TrimConfig       `json:"trim" yaml:"trim" mapstructure:"trim"`
	Authors    AuthorsConfig    `json:"authors" yaml:"authors" mapstructure:"authors"`
	Packages   PackagesConfig   `json:"packages" yaml:"packages" mapstructure:"packages"`
	Index      IndexConfig      `json:"index" yaml:"index" mapstructure:"index"`
	Output     OutputFormat     `json:"output" yaml:"output" mapstructure:"output"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Conference: ConferenceConfig{
			Number:  "XXVI",
			Editors: "Pasian,~F. and Molinaro,~M. and Mansutti,~O. and Shortridge,~K.",
			Volume:  "TBD",
		},
		Refs:   RefsConfig{AllowBibitems: true},
		Trim:   TrimConfig{Mode: TrimComment},
		Index:  IndexConfig{Path: "authors.db"},
		Output: OutputText,
	}
}

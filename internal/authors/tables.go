// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package authors

import "github.com/pdiddy/refcheck/pkg/types"

// Tables holds the word lists the parser's heuristics consult. The parser
// never modifies them.
type Tables struct {
	// Accents lists the characters c for which `\c x` is rewritten as
	// `\c{x}` before names are split.
	Accents string

	// Particles are lower-case words taken as the start of a compound
	// surname when they precede it, e.g. "van" in "van der Waals".
	Particles []string

	// TeamWords are lower-case words suggesting a chunk is a team credit
	// rather than a person.
	TeamWords []string

	// Suffixes maps a lower-case trailing word to the suffix it stands for.
	Suffixes map[string]string

	// Numerals are generational suffixes matched exactly.
	Numerals []string
}

// DefaultTables returns the built-in tables.
func DefaultTables() Tables {
	return Tables{
		Accents:   "`'^\"H~ckl=b.druv",
		Particles: []string{"van", "de", "den", "von", "le", "da", "der"},
		TeamWords: []string{"on", "behalf", "team", "the", "of"},
		Suffixes:  map[string]string{"jr": "Jr.", "sr": "Sr."},
		Numerals:  []string{"II", "III", "IV", "V"},
	}
}

// WithConfig returns t with any list set in cfg replacing the built-in one.
func (t Tables) WithConfig(cfg types.AuthorsConfig) Tables {
	if len(cfg.Particles) > 0 {
		t.Particles = cfg.Particles
	}
	if len(cfg.TeamWords) > 0 {
		t.TeamWords = cfg.TeamWords
	}
	return t
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

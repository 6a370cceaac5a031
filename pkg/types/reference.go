// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// BibRecord is one entry of a .bib database file.
type BibRecord struct {
	// Type is the entry type tag as written, e.g. "article" or "INPROCEEDINGS".
	Type string `json:"type" yaml:"type"`

	// Key is the citation key. It is empty when the key could not be isolated.
	Key string `json:"key" yaml:"key"`

	// StartLine is the 1-based line holding the '@' marker.
	StartLine int `json:"start_line" yaml:"start_line"`

	// EndLine is the 1-based last line of the record, inclusive.
	EndLine int `json:"end_line" yaml:"end_line"`
}

// Initial is a single forename initial. Letter is either one character or
// an accent directive such as `\'{E}`.
type Initial struct {
	Letter string `json:"letter" yaml:"letter"`

	// Hyphenated joins this initial to the previous one with '-' instead of '~'.
	Hyphenated bool `json:"hyphenated,omitempty" yaml:"hyphenated,omitempty"`
}

// AuthorRecord is one normalized author taken from an \author list.
type AuthorRecord struct {
	// Surname may contain spaces, e.g. "van der Waals".
	Surname string `json:"surname" yaml:"surname"`

	Initials []Initial `json:"initials,omitempty" yaml:"initials,omitempty"`

	// Suffix is "Jr.", "Sr." or a Roman numeral, empty when absent.
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`
}

// InitialsString renders the initials alone, e.g. "~A.~B." or "~J.-L.".
func (a AuthorRecord) InitialsString() string {
	var b strings.Builder
	for _, in := range a.Initials {
		if in.Hyphenated {
			b.WriteByte('-')
		} else {
			b.WriteByte('~')
		}
		b.WriteString(in.Letter)
		b.WriteByte('.')
	}
	return b.String()
}

// String renders the record in index form, e.g. "Smith,~A.~B." or "King,~M.~L.,~Jr.".
func (a AuthorRecord) String() string {
	s := a.Surname + "," + a.InitialsString()
	if a.Suffix != "" {
		s += ",~" + a.Suffix
	}
	return s
}

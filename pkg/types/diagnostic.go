// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Severity classifies a diagnostic. Only problems block a check.
type Severity string

const (
	SeverityProblem Severity = "problem"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Diagnostic is one free-text finding produced while checking a paper.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Text     string   `json:"text" yaml:"text"`
}

// String returns the diagnostic text.
func (d Diagnostic) String() string {
	return d.Text
}

// Diagnostics is an ordered list of findings, in the order inputs were scanned.
type Diagnostics []Diagnostic

// Problem appends a problem built from format and args.
func (ds *Diagnostics) Problem(format string, args ...any) {
	*ds = append(*ds, Diagnostic{Severity: SeverityProblem, Text: fmt.Sprintf(format, args...)})
}

// Warning appends a warning built from format and args.
func (ds *Diagnostics) Warning(format string, args ...any) {
	*ds = append(*ds, Diagnostic{Severity: SeverityWarning, Text: fmt.Sprintf(format, args...)})
}

// Note appends a note built from format and args.
func (ds *Diagnostics) Note(format string, args ...any) {
	*ds = append(*ds, Diagnostic{Severity: SeverityNote, Text: fmt.Sprintf(format, args...)})
}

// Append adds all of other to ds.
func (ds *Diagnostics) Append(other Diagnostics) {
	*ds = append(*ds, other...)
}

// Filter returns the diagnostics with the given severity.
func (ds Diagnostics) Filter(sev Severity) Diagnostics {
	var out Diagnostics
	for _, d := range ds {
		if d.Severity == sev {
			out = append(out, d)
		}
	}
	return out
}

// Problems returns only the problem diagnostics.
func (ds Diagnostics) Problems() Diagnostics {
	return ds.Filter(SeverityProblem)
}

// HasProblems reports whether any diagnostic is a problem.
func (ds Diagnostics) HasProblems() bool {
	for _, d := range ds {
		if d.Severity == SeverityProblem {
			return true
		}
	}
	return false
}

// Texts returns the diagnostic texts in order.
func (ds Diagnostics) Texts() []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Text
	}
	return out
}

// CheckResult is the outcome of one top-level check on one paper.
type CheckResult struct {
	// Check names the check, e.g. "refs" or "authors".
	Check string `json:"check" yaml:"check"`

	// OK is false when the check found something that blocks acceptance.
	OK bool `json:"ok" yaml:"ok"`

	// Diagnostics holds everything the check reported, in scan order.
	Diagnostics Diagnostics `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// MissingSource returns the failed result for a check whose input file is absent.
func MissingSource(check, what, path string) CheckResult {
	var ds Diagnostics
	ds.Problem("Cannot find %s: %s", what, path)
	return CheckResult{Check: check, OK: false, Diagnostics: ds}
}

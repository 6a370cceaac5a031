// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders check results for people and for other tools.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/refcheck/pkg/types"
)

// ProblemPrefix marks problem lines so they stand out in plain text.
const ProblemPrefix = "** "

// Renderer prints check results as text.
type Renderer struct {
	W     io.Writer
	Color bool

	ok      *color.Color
	failed  *color.Color
	problem *color.Color
	warning *color.Color
}

// NewRenderer returns a renderer for w. Color is used only when w is a
// terminal and noColor is false.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	useColor := false
	if f, ok := w.(*os.File); ok && !noColor {
		useColor = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Renderer{W: w, Color: useColor}
}

func (r *Renderer) palette() {
	if r.ok != nil {
		return
	}
	r.ok = color.New(color.FgGreen, color.Bold)
	r.failed = color.New(color.FgRed, color.Bold)
	r.problem = color.New(color.FgRed)
	r.warning = color.New(color.FgYellow)
	for _, c := range []*color.Color{r.ok, r.failed, r.problem, r.warning} {
		if r.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// Render prints one result: a header naming the check and its outcome,
// then each diagnostic on its own line.
func (r *Renderer) Render(res types.CheckResult) error {
	r.palette()

	status := r.ok.Sprint("OK")
	if !res.OK {
		status = r.failed.Sprint("FAILED")
	}
	if _, err := fmt.Fprintf(r.W, "== %s: %s\n", res.Check, status); err != nil {
		return err
	}

	for _, d := range res.Diagnostics {
		var line string
		switch d.Severity {
		case types.SeverityProblem:
			line = r.problem.Sprint(ProblemPrefix + d.Text)
		case types.SeverityWarning:
			line = r.warning.Sprint(d.Text)
		default:
			line = d.Text
		}
		if _, err := fmt.Fprintln(r.W, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderAll prints each result in turn, separated by blank lines.
func (r *Renderer) RenderAll(results []types.CheckResult) error {
	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(r.W); err != nil {
				return err
			}
		}
		if err := r.Render(res); err != nil {
			return err
		}
	}
	return nil
}

// PaperReport holds every check run on one paper.
type PaperReport struct {
	Paper   string              `json:"paper" yaml:"paper"`
	OK      bool                `json:"ok" yaml:"ok"`
	Results []types.CheckResult `json:"results" yaml:"results"`
}

// NewPaperReport groups results for paper. The paper is OK when every
// check is.
func NewPaperReport(paper string, results []types.CheckResult) PaperReport {
	ok := true
	for _, r := range results {
		ok = ok && r.OK
	}
	return PaperReport{Paper: paper, OK: ok, Results: results}
}

// Batch is the report for a run over several papers.
type Batch struct {
	Conference string        `json:"conference,omitempty" yaml:"conference,omitempty"`
	Papers     []PaperReport `json:"papers" yaml:"papers"`
}

// Failed returns the names of the papers with at least one failed check.
func (b Batch) Failed() []string {
	var out []string
	for _, p := range b.Papers {
		if !p.OK {
			out = append(out, p.Paper)
		}
	}
	return out
}

// WriteYAML serializes b to w.
func WriteYAML(w io.Writer, b Batch) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

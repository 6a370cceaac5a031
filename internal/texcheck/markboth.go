// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package texcheck

import (
	"os"
	"strings"

	"github.com/pdiddy/refcheck/internal/texscan"
	"github.com/pdiddy/refcheck/pkg/types"
)

// Text left in place from the paper templates.
const (
	templateAuthors  = "Author1, Author2, and Author3"
	templateTitle    = "Short Title"
	oldTemplateTitle = "Author's Final Checklist"
)

// CheckRunningHeads checks the \markboth{authors}{title} directive that sets
// the running heads. There must be exactly one, with two non-blank,
// distinct arguments that are not the template's placeholder text.
func CheckRunningHeads(path string) (types.CheckResult, error) {
	res := types.CheckResult{Check: "heads", OK: true}
	count := 0

	err := texscan.ScanFile(path, func(cmd texscan.Command) {
		if cmd.Name != "markboth" {
			return
		}
		count++
		if count == 2 {
			res.Diagnostics.Problem(`Paper contains multiple \markboth directives`)
		}

		args := cmd.BraceArgs()
		if len(args) != 2 {
			res.Diagnostics.Problem(`\markboth directive has wrong number of arguments`)
			return
		}
		authors := strings.Trim(args[0], "{}")
		title := strings.Trim(args[1], "{}")
		res.Diagnostics.Note("Author list for running header is '%s'", authors)
		res.Diagnostics.Note("Paper title for running header is '%s'", title)

		if authors == templateAuthors {
			res.Diagnostics.Problem("Author list is unchanged from the template")
		}
		if strings.TrimSpace(authors) == "" {
			res.Diagnostics.Problem("Author list is blank")
		}
		switch title {
		case oldTemplateTitle:
			res.Diagnostics.Problem("Paper title is unchanged from an out-of-date template")
		case templateTitle:
			res.Diagnostics.Problem("Paper title is unchanged from the template")
		}
		if strings.TrimSpace(title) == "" {
			res.Diagnostics.Problem("Paper title is blank")
		}
		if authors == title {
			res.Diagnostics.Problem("Paper title is the same as the author list")
		}
	})
	if os.IsNotExist(err) {
		return types.MissingSource("heads", "main .tex file", path), nil
	}
	if err != nil {
		return types.CheckResult{}, err
	}

	if count == 0 {
		res.Diagnostics.Problem(`%s has no \markboth directive`, path)
	}
	res.OK = !res.Diagnostics.HasProblems()
	return res, nil
}

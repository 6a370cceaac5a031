// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package texcheck holds the document checks that look at a paper's .tex
// source on its own: which packages it loads, its running heads and any
// characters LaTeX will not print.
package texcheck

import (
	"os"
	"strings"

	"github.com/pdiddy/refcheck/internal/texscan"
	"github.com/pdiddy/refcheck/pkg/types"
)

// DefaultStandardPackages returns the packages the proceedings style loads
// itself. Loading them again is harmless.
func DefaultStandardPackages() []string {
	return []string{
		"array", "txfonts", "ifthen", "lscape", "index", "graphicx", "asmsymb",
		"wrapfig", "chapterbib", "url", "ncccropmark", "watermark",
	}
}

// styleNames are the proceedings style itself, which every paper loads.
var styleNames = map[string]bool{"asp2014": true, "./asp2014": true}

// CheckPackages lists the packages the paper at path loads with
// \usepackage. Standard packages give a note; anything else is a problem.
// A nil standard list selects DefaultStandardPackages.
func CheckPackages(path string, standard []string) (types.CheckResult, error) {
	if standard == nil {
		standard = DefaultStandardPackages()
	}
	known := make(map[string]bool, len(standard))
	for _, p := range standard {
		known[p] = true
	}

	var std, other []string
	err := texscan.ScanFile(path, func(cmd texscan.Command) {
		if cmd.Name != "usepackage" {
			return
		}
		for _, arg := range cmd.BraceArgs() {
			for _, pkg := range strings.Split(strings.Trim(arg, "{}"), ",") {
				pkg = strings.Join(strings.Fields(pkg), "")
				switch {
				case pkg == "" || styleNames[pkg]:
				case known[pkg]:
					std = append(std, pkg)
				default:
					other = append(other, pkg)
				}
			}
		}
	})
	if os.IsNotExist(err) {
		return types.MissingSource("packages", "main .tex file", path), nil
	}
	if err != nil {
		return types.CheckResult{}, err
	}

	res := types.CheckResult{Check: "packages", OK: true}
	if len(std) > 0 {
		res.Diagnostics.Note("Note: %s includes the following standard package(s): %s; this is OK, but unnecessary",
			path, strings.Join(std, " "))
	}
	if len(other) > 0 {
		res.OK = false
		res.Diagnostics.Problem("%s includes the following non-standard package(s): %s; this may be a problem",
			path, strings.Join(other, " "))
	}
	return res, nil
}

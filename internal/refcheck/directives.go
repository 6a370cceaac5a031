// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package refcheck

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/refcheck/internal/texscan"
	"github.com/pdiddy/refcheck/pkg/types"
)

const localStyle = "./asp2014"

// CheckDirectives checks that every \bibliography directive in r names
// bibFile (with or without its .bib extension) and that the paper does not
// load the conference style from a local copy.
func CheckDirectives(r io.Reader, bibFile string) (types.Diagnostics, error) {
	var ds types.Diagnostics

	name := filepath.Base(bibFile)
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if bibFile == "" {
		name, base = "", ""
	}

	err := texscan.Scan(r, func(cmd texscan.Command) {
		arg, ok := cmd.FirstBraceArg()
		if !ok {
			return
		}
		arg = strings.TrimSpace(arg)
		switch cmd.Name {
		case "usepackage":
			if arg == localStyle {
				ds.Problem(`.tex file has \usepackage{%s} directive`, localStyle)
			}
		case "bibliography":
			if arg != base && arg != name {
				ds.Problem(`Note: .tex file includes \bibliography{%s} directive, expected \bibliography{%s}`, arg, base)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	if ds.HasProblems() {
		ds.Problem(".tex file directives may need correcting")
	}
	return ds, nil
}

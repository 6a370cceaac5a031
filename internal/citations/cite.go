// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citations

import (
	"os"
	"strings"

	"github.com/pdiddy/refcheck/internal/texscan"
	"github.com/pdiddy/refcheck/pkg/types"
)

// CheckCite reports every bare \cite in the paper at path. Unlike the note
// Extract emits, each use here is a problem: authors are expected to choose
// \citep or \citet explicitly.
func CheckCite(path string) (types.CheckResult, error) {
	res := types.CheckResult{Check: "cite", OK: true}

	var refs []string
	err := texscan.ScanFile(path, func(cmd texscan.Command) {
		if cmd.Name != "cite" {
			return
		}
		arg, _ := cmd.FirstBraceArg()
		refs = append(refs, strings.TrimSpace(arg))
	})
	if os.IsNotExist(err) {
		return types.MissingSource("cite", "main .tex file", path), nil
	}
	if err != nil {
		return types.CheckResult{}, err
	}

	if len(refs) > 0 {
		res.OK = false
		res.Diagnostics.Problem(`The .tex file cites the following references using \cite: %s`,
			strings.Join(refs, " "))
		res.Diagnostics.Problem(`These should be changed to use \citep or \citet`)
	}
	return res, nil
}

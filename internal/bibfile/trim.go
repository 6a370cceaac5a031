// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibfile

import (
	"fmt"
	"os"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/pdiddy/refcheck/internal/fileutil"
	"github.com/pdiddy/refcheck/pkg/types"
)

// atPlaceholder replaces '@' in commented-out records. BibTeX ignores '%'
// but starts a new record at any '@' outside a record.
const atPlaceholder = "_AT_"

// BackupSuffix is appended to the original file name when a trim replaces it.
const BackupSuffix = fileutil.BackupSuffix

// TrimOptions controls a trim run.
type TrimOptions struct {
	// Mode selects commenting out (default) or deleting unused records.
	Mode types.TrimMode

	// DryRun computes the change and its diff without touching the file.
	DryRun bool
}

// TrimResult reports what a trim run did.
type TrimResult struct {
	Kept    []string
	Removed []string

	// Changed is true when at least one record was commented out or deleted.
	Changed bool

	// Backup is the path of the saved original, set only when the file was replaced.
	Backup string

	// Diff lists removed and added lines, set only for dry runs.
	Diff string

	Diagnostics types.Diagnostics
}

// Trim comments out or deletes every record of the database at path whose
// key is not in cited. Records whose key cannot be isolated are kept and
// flagged. The new content is staged in a temporary file next to path and
// swapped in by rename only if something changed; the original is kept as
// path+BackupSuffix.
func Trim(path string, cited []string, opts TrimOptions) (TrimResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TrimResult{}, fmt.Errorf("reading database: %w", err)
	}
	original := string(data)
	lines := splitLines(original)

	rs := newRecordScanner(NewParser(nil).entryTypes)
	for _, l := range lines {
		rs.step(strings.TrimRight(l, "\r\n"))
	}

	used := make(map[string]bool, len(cited))
	for _, k := range cited {
		used[strings.TrimSpace(k)] = true
	}

	var result TrimResult
	drop := make([]bool, len(lines))
	for _, rec := range rs.records {
		switch {
		case rec.Key == "":
			if !specialTypes[strings.ToLower(rec.Type)] {
				result.Diagnostics.Warning("Blank name in .bib file at line %d, record kept", rec.StartLine)
			}
		case used[rec.Key]:
			result.Kept = append(result.Kept, rec.Key)
		default:
			result.Removed = append(result.Removed, rec.Key)
			for i := rec.StartLine; i <= rec.EndLine && i <= len(lines); i++ {
				drop[i-1] = true
			}
		}
	}
	if len(result.Diagnostics) > 0 {
		result.Diagnostics.Warning("Problem parsing the file may mean an unused reference has been kept")
	}

	var b strings.Builder
	b.Grow(len(original))
	for i, l := range lines {
		if !drop[i] {
			b.WriteString(l)
			continue
		}
		result.Changed = true
		if opts.Mode == types.TrimDelete {
			continue
		}
		b.WriteString("%" + strings.ReplaceAll(l, "@", atPlaceholder))
	}
	trimmed := b.String()

	if opts.DryRun {
		result.Diff = lineDiff(original, trimmed)
		return result, nil
	}

	backup, err := fileutil.Replace(path, trimmed, result.Changed)
	if err != nil {
		return result, err
	}
	result.Backup = backup
	return result, nil
}

// splitLines splits text into lines that keep their terminators.
func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// lineDiff renders the changed lines between from and to, one per line,
// prefixed "-" or "+".
func lineDiff(from, to string) string {
	dmp := diffpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, l := range splitLines(d.Text) {
			out.WriteString(prefix + strings.TrimRight(l, "\r\n") + "\n")
		}
	}
	return out.String()
}

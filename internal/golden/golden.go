// Package golden compares a rendered report against a stored baseline.
package golden

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Compare reports whether got matches the baseline want. On drift it returns
// a diff-match-patch patch that turns want into got. Both sides are
// normalized first, so line endings and trailing whitespace never count as
// drift.
func Compare(want, got []byte) (string, bool) {
	before, after := normalize(string(want)), normalize(string(got))
	if before == after {
		return "", true
	}

	dmp := diffmatchpatch.New()
	// Diff whole lines so hunks line up with report fields.
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	diffs = dmp.DiffCleanupSemantic(diffs)

	patchList := dmp.PatchMake(before, diffs)
	return dmp.PatchToText(patchList), false
}

// Write compares want and got and, on drift, writes the patch to w under a
// header naming the baseline. It returns true when the two match.
func Write(w io.Writer, baseline string, want, got []byte) (bool, error) {
	diff, ok := Compare(want, got)
	if ok {
		return true, nil
	}
	if _, err := fmt.Fprintf(w, "# drift from %s\n%s", baseline, diff); err != nil {
		return false, fmt.Errorf("writing diff: %w", err)
	}
	return false, nil
}

// normalize trims trailing whitespace from each line, converts CRLF to LF and
// drops trailing blank lines.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

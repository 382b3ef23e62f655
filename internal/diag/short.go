package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"plexlex/internal/source"
)

// shortLine is one row of the short format.
type shortLine struct {
	severity string
	code     string
	path     string
	line     uint32
	col      uint32
	message  string
}

// FormatShort renders one line per diagnostic:
//
//	error LEX1002 plans/a.ple:3:14 unterminated string literal
//
// Notes follow as "note" rows with the code of their diagnostic. Paths are
// relative to the FileSet base dir with forward slashes, messages are
// folded onto one line, and rows are sorted by location, so the output is
// stable across platforms and fit for golden files. Diagnostics pointing
// at unknown files are skipped.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	lines := make([]shortLine, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		code := d.Code.ID()
		if l, ok := locate(fs, d.Primary); ok {
			l.severity, l.code, l.message = d.Severity.Label(), code, oneLine(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := locate(fs, n.Span); ok {
				l.severity, l.code, l.message = "note", code, oneLine(n.Msg)
				lines = append(lines, l)
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.severity, b.severity),
			cmp.Compare(a.code, b.code),
			cmp.Compare(a.message, b.message),
		)
	})

	rows := make([]string, len(lines))
	for i, l := range lines {
		rows[i] = fmt.Sprintf("%s %s %s:%d:%d %s", l.severity, l.code, l.path, l.line, l.col, l.message)
	}
	return strings.Join(rows, "\n")
}

func locate(fs *source.FileSet, span source.Span) (shortLine, bool) {
	if int(span.File) >= fs.Len() {
		return shortLine{}, false
	}
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = path[2:]
	}
	return shortLine{path: path, line: start.Line, col: start.Col}, true
}

func oneLine(msg string) string {
	return strings.TrimSpace(strings.Join(strings.Fields(msg), " "))
}

package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"plexlex/internal/diag"
	"plexlex/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p *palette) {
	f := lookupFile(fs, d.Primary.File)
	sev := p.severity(d.Severity)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	start, end := fs.Resolve(d.Primary)
	path := formatPath(f, fs, opts.PathMode)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprintf("%s:%d:%d", path, start.Line, start.Col),
		sev.Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		d.Message)

	if len(f.Content) > 0 {
		writeSnippet(w, f, start, end, int(opts.Context), p)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		nf := lookupFile(fs, n.Span.File)
		if nf == nil {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
			continue
		}
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"), formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

// writeSnippet prints up to ctx lines before the primary line, the line
// itself and a caret underline. Spans crossing lines are underlined to
// the end of their first line.
func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, ctx int, p *palette) {
	first := max(int(start.Line)-ctx, 1)
	gutter := len(fmt.Sprint(start.Line))
	for ln := first; ln <= int(start.Line); ln++ {
		line := f.GetLine(uint32(ln)) // #nosec G115 -- ln <= start.Line
		fmt.Fprintf(w, " %s %s\n", p.dim.Sprintf("%*d |", gutter, ln), line)
	}

	line := f.GetLine(start.Line)
	startCol := min(int(start.Col)-1, len(line))
	endCol := len(line)
	if end.Line == start.Line {
		endCol = min(int(end.Col)-1, len(line))
	}
	endCol = max(endCol, startCol)

	pad := caretPadding(line[:startCol])
	width := max(runewidth.StringWidth(line[startCol:endCol]), 1)
	marks := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s%s\n", p.dim.Sprintf("%*s |", gutter, ""), pad, p.caret.Sprint(marks))
}

// caretPadding blanks out prefix keeping tabs, so the caret lines up
// under the same display column.
func caretPadding(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func lookupFile(fs *source.FileSet, id source.FileID) *source.File {
	if fs == nil || int(id) >= fs.Len() {
		return nil
	}
	return fs.Get(id)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	default:
		return f.FormatPath(mode.String(), "")
	}
}

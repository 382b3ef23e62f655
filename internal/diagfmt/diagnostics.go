package diagfmt

import (
	"io"

	"plexlex/internal/diag"
	"plexlex/internal/source"
)

// Location is a span as printed in structured output. Line and column
// ranges are present only when positions were requested.
type Location struct {
	File      string          `json:"file" yaml:"file" msgpack:"file"`
	StartByte uint32          `json:"start_byte" yaml:"start_byte" msgpack:"start_byte"`
	EndByte   uint32          `json:"end_byte" yaml:"end_byte" msgpack:"end_byte"`
	Start     *source.LineCol `json:"start,omitempty" yaml:"start,omitempty" msgpack:"start,omitempty"`
	End       *source.LineCol `json:"end,omitempty" yaml:"end,omitempty" msgpack:"end,omitempty"`
}

type NoteOutput struct {
	Message  string   `json:"message" yaml:"message" msgpack:"message"`
	Location Location `json:"location" yaml:"location" msgpack:"location"`
}

type DiagnosticOutput struct {
	Severity string       `json:"severity" yaml:"severity" msgpack:"severity"`
	Code     string       `json:"code" yaml:"code" msgpack:"code"`
	Title    string       `json:"title" yaml:"title" msgpack:"title"`
	Message  string       `json:"message" yaml:"message" msgpack:"message"`
	Location Location     `json:"location" yaml:"location" msgpack:"location"`
	Notes    []NoteOutput `json:"notes,omitempty" yaml:"notes,omitempty" msgpack:"notes,omitempty"`
}

// DiagnosticsOutput is the document written for structured formats.
// Omitted counts diagnostics that were collected but not listed, either
// because the Bag was full or because of DiagOpts.Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticOutput `json:"diagnostics" yaml:"diagnostics" msgpack:"diagnostics"`
	Count       int                `json:"count" yaml:"count" msgpack:"count"`
	Errors      int                `json:"errors" yaml:"errors" msgpack:"errors"`
	Warnings    int                `json:"warnings" yaml:"warnings" msgpack:"warnings"`
	Omitted     int                `json:"omitted,omitempty" yaml:"omitted,omitempty" msgpack:"omitted,omitempty"`
}

// BuildDiagnostics converts bag in its current order. A nil bag yields an
// empty, non-nil listing.
func BuildDiagnostics(bag *diag.Bag, fs *source.FileSet, opts DiagOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Diagnostics: []DiagnosticOutput{}}
	if bag == nil {
		return out
	}
	items := bag.Items()
	shown := items
	if opts.Max > 0 && opts.Max < len(items) {
		shown = items[:opts.Max]
	}
	loc := func(sp source.Span) Location { return location(sp, fs, opts) }

	for _, d := range shown {
		do := DiagnosticOutput{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: loc(d.Primary),
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				do.Notes = append(do.Notes, NoteOutput{Message: n.Msg, Location: loc(n.Span)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, do)
	}
	out.Count = len(out.Diagnostics)
	out.Errors = bag.CountBySeverity(diag.SevError)
	out.Warnings = bag.CountBySeverity(diag.SevWarning)
	out.Omitted = len(items) - len(shown) + bag.Dropped()
	return out
}

func location(sp source.Span, fs *source.FileSet, opts DiagOpts) Location {
	loc := Location{StartByte: sp.Start, EndByte: sp.End}
	f := lookupFile(fs, sp.File)
	if f == nil {
		return loc
	}
	loc.File = formatPath(f, fs, opts.PathMode)
	if opts.IncludePositions {
		start, end := fs.Resolve(sp)
		loc.Start, loc.End = &start, &end
	}
	return loc
}

// WriteDiagnostics renders bag in format: the caret printer for
// FormatPretty, a DiagnosticsOutput document otherwise.
func WriteDiagnostics(w io.Writer, format Format, bag *diag.Bag, fs *source.FileSet, pretty PrettyOpts, opts DiagOpts) error {
	if format == FormatPretty {
		Pretty(w, bag, fs, pretty)
		return nil
	}
	return Encode(w, format, BuildDiagnostics(bag, fs, opts))
}

package diag

import (
	"testing"

	"plexlex/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	plan := fs.Add("/workspace/plans/sample.ple", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     IOCacheError,
			Message:  "another",
			Primary:  source.Span{File: plan, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     LexUnterminatedString,
			Message:  "first line\r\nsecond",
			Primary:  source.Span{File: plan, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: plan, Start: 2, End: 3}, Msg: "note line"},
			},
		},
	}

	expected := "error LEX1002 plans/sample.ple:1:1 first line second\n" +
		"note LEX1002 plans/sample.ple:2:1 note line\n" +
		"warning IO4002 plans/sample.ple:2:1 another"

	if got := FormatShort(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	withoutNotes := "error LEX1002 plans/sample.ple:1:1 first line second\n" +
		"warning IO4002 plans/sample.ple:2:1 another"
	if got := FormatShort(diags, fs, false); got != withoutNotes {
		t.Fatalf("notes must be dropped:\n%s", got)
	}
}

func TestFormatShortSkipsUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{NewError(LexInvalidEscape, source.Span{File: 42}, "lost")}
	if got := FormatShort(diags, fs, false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := FormatShort(diags, nil, false); got != "" {
		t.Fatalf("nil file set must yield nothing, got %q", got)
	}
}

func TestSeverityNames(t *testing.T) {
	if SevError.String() != "ERROR" || SevWarning.Label() != "warning" || Severity(9).String() != "UNKNOWN" {
		t.Fatalf("unexpected severity names")
	}
}

package diag

import (
	"testing"

	"plexlex/internal/source"
)

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(4)
	r := BagReporter{Bag: bag}
	b := ReportError(r, LexInvalidEscape, source.Span{Start: 3, End: 4}, "invalid escape").
		WithNote(source.Span{Start: 0, End: 6}, "in this string")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", bag.Len())
	}
	got := bag.Items()[0]
	if len(got.Notes) != 1 || got.Notes[0].Msg != "in this string" {
		t.Fatalf("note lost: %+v", got.Notes)
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(4)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(LexUnrecognizedChar, SevError, sp, "unexpected '$'", nil)
	r.Report(LexUnrecognizedChar, SevError, sp, "unexpected '$'", nil)
	r.Report(LexUnrecognizedChar, SevError, source.Span{Start: 2, End: 3}, "unexpected '$'", nil)
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", bag.Len())
	}
}

func TestNilBagReporterIsSafe(t *testing.T) {
	BagReporter{}.Report(LexUnrecognizedChar, SevError, source.Span{}, "x", nil)
	var b *ReportBuilder
	b.WithNote(source.Span{}, "n").Emit()
}

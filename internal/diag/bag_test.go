package diag

import (
	"strings"
	"testing"

	"plexlex/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		b.Add(NewError(LexUnrecognizedChar, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x"))
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
	if !b.HasErrors() || b.Dropped() != 1 {
		t.Fatalf("HasErrors=%v Dropped=%d", b.HasErrors(), b.Dropped())
	}
	warnOnly := NewBag(1)
	warnOnly.Add(New(SevWarning, IOCacheError, source.Span{}, "w"))
	if warnOnly.HasErrors() {
		t.Fatalf("a warning is not an error")
	}
}

func TestNewBagClampsLimit(t *testing.T) {
	if got := NewBag(1 << 20).Cap(); got != ^uint16(0) {
		t.Fatalf("expected clamped cap, got %d", got)
	}
	if got := NewBag(-1).Cap(); got != 0 {
		t.Fatalf("expected zero cap, got %d", got)
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(10)
	late := NewError(LexInvalidEscape, source.Span{Start: 5, End: 6}, "late")
	early := New(SevWarning, LexUnrecognizedChar, source.Span{Start: 1, End: 2}, "early")
	sameSpanWarning := New(SevWarning, IOCacheError, source.Span{Start: 5, End: 6}, "warn")
	b.Add(sameSpanWarning)
	b.Add(late)
	b.Add(early)
	b.Sort()
	var order []string
	for _, d := range b.Items() {
		order = append(order, d.Message)
	}
	if strings.Join(order, ",") != "early,late,warn" {
		t.Fatalf("unexpected order %v", order)
	}
	if b.CountBySeverity(SevError) != 1 || b.CountBySeverity(SevWarning) != 2 {
		t.Fatalf("unexpected severity counts")
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LexUnterminatedString, source.Span{}, "a"))
	other := NewBag(2)
	other.Add(NewError(LexUnterminatedString, source.Span{}, "b"))
	other.Add(NewError(LexUnterminatedString, source.Span{}, "c"))
	other.Add(NewError(LexUnterminatedString, source.Span{}, "d"))
	a.Merge(other)
	a.Merge(nil)
	if a.Len() != 3 || a.Cap() != 3 || a.Dropped() != 1 {
		t.Fatalf("merge: len=%d cap=%d dropped=%d", a.Len(), a.Cap(), a.Dropped())
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexUnrecognizedChar:         "LEX1001",
		LexUnterminatedString:       "LEX1002",
		LexUnterminatedBlockComment: "LEX1003",
		LexInvalidEscape:            "LEX1004",
		IOLoadFileError:             "IO4001",
		ProjConfigError:             "PRJ5001",
		UnknownCode:                 "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d: want %s, got %s", code, want, got)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Errorf("unexpected title for unmapped code")
	}
}

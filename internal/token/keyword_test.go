package token

import (
	"testing"
)

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Kind{
		"Command":        KwCommand,
		"Sequence":       KwSequence,
		"LookupOnChange": KwLookupOnChange,
		"EXECUTING":      KwExecutingState,
		"FAILING":        KwFailingState,
		"StartCondition": KwStartCondition,
		"Start":          KwStartCondition,
		"EndCondition":   KwEndCondition,
		"Pre":            KwPreCondition,
		"PreCondition":   KwPreCondition,
		"String":         KwString,
		"AND":            And,
		"true":           KwTrue,
		"real_to_int":    KwRealToInt,
	}

	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	// регистр важен, префиксы и расширения — идентификаторы
	notKw := []string{
		"command", "SEQUENCE", "executing",
		"Startup", "Stringify", "StartConditions", "Pr",
		"and", "True", "If",
	}
	for _, s := range notKw {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestKeywordsListingSortedAndComplete(t *testing.T) {
	list := Keywords()
	if len(list) != len(keywords) {
		t.Fatalf("Keywords() returned %d entries, table has %d", len(list), len(keywords))
	}
	for i := 1; i < len(list); i++ {
		prev, cur := list[i-1], list[i]
		if prev.Kind > cur.Kind || (prev.Kind == cur.Kind && prev.Spelling >= cur.Spelling) {
			t.Fatalf("entries %d and %d out of order: %+v, %+v", i-1, i, prev, cur)
		}
	}
	for _, e := range list {
		if e.Name != e.Kind.String() {
			t.Fatalf("entry %q: name %q does not match kind %v", e.Spelling, e.Name, e.Kind)
		}
		if e.Group == GroupNone.String() {
			t.Fatalf("entry %q has no group", e.Spelling)
		}
	}
}

func TestKeywordSpellingsAreIdentifiers(t *testing.T) {
	for s := range keywords {
		for i := 0; i < len(s); i++ {
			c := s[i]
			ok := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9')
			if !ok {
				t.Fatalf("keyword %q is not a plain identifier", s)
			}
		}
	}
}

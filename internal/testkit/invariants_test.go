package testkit

import (
	"strings"
	"testing"

	"plexlex/internal/errwrap"
	"plexlex/internal/lexer"
	"plexlex/internal/source"
	"plexlex/internal/token"
)

func lexRaw(t *testing.T, src string, mode lexer.Mode) ([]token.Token, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.ple", []byte(src)))
	toks, _ := lexer.Tokenize(f, lexer.Options{Mode: mode})
	return toks, f
}

func TestInvariantsHold(t *testing.T) {
	inputs := []string{
		"",
		"Command c(Integer x);\n",
		"/* open",
		"\"abc\n",
		"x = 1 $ 2 @ \"a\\qb\";",
		"\ufeffNode: {}\r\n",
	}
	for _, in := range inputs {
		toks, f := lexRaw(t, in, lexer.ModeCollectAll)
		if err := CheckRoundTrip(toks, f); err != nil {
			t.Errorf("%q: %v", in, err)
		}
		if err := CheckSpanInvariants(toks, f, true); err != nil {
			t.Errorf("%q: %v", in, err)
		}
	}
}

func TestFailFastIsPrefix(t *testing.T) {
	toks, f := lexRaw(t, "a $ b", lexer.ModeFailFast)
	if err := CheckSpanInvariants(toks, f, false); err != nil {
		t.Fatalf("prefix stream: %v", err)
	}
	if err := CheckSpanInvariants(toks, f, true); err == nil {
		t.Fatal("complete check must reject a truncated stream")
	}
	if err := CheckRoundTrip(toks, f); err == nil {
		t.Fatal("round trip must fail on a truncated stream")
	}
}

func TestDetectsBrokenStreams(t *testing.T) {
	toks, f := lexRaw(t, "a b", lexer.ModeCollectAll)

	gap := append([]token.Token(nil), toks...)
	gap = append(gap[:1], gap[2:]...) // drop the whitespace
	err := CheckSpanInvariants(gap, f, true)
	if err == nil || !strings.Contains(err.Error(), "previous ended at 1") {
		t.Fatalf("gap not detected: %v", err)
	}

	wrongText := append([]token.Token(nil), toks...)
	wrongText[0].Text = "z"
	if err := CheckSpanInvariants(wrongText, f, true); err == nil {
		t.Fatal("text mismatch not detected")
	}

	noEOF := toks[:len(toks)-1]
	if err := CheckSpanInvariants(noEOF, f, true); err == nil {
		t.Fatal("missing EOF not detected")
	}

	wrongText[1].Pos.Col = 9
	if n := len(errwrap.Flatten(CheckSpanInvariants(wrongText, f, true))); n != 2 {
		t.Fatalf("want 2 aggregated problems, got %d", n)
	}

	if CheckSpanInvariants(nil, f, true) == nil || CheckRoundTrip(toks, nil) == nil {
		t.Fatal("degenerate input must be rejected")
	}
}

package token_test

import (
	"testing"

	"plexlex/internal/source"
	"plexlex/internal/token"
)

func TestExpandRestoresRawOrder(t *testing.T) {
	ws := token.Trivia{Kind: token.Whitespace, Span: source.Span{Start: 1, End: 2}, Text: " "}
	cm := token.Trivia{Kind: token.LineComment, Span: source.Span{Start: 2, End: 7}, Text: "// c\n"}
	toks := []token.Token{
		{Kind: token.Ident, Span: source.Span{Start: 0, End: 1}, Text: "x"},
		{Kind: token.Ident, Span: source.Span{Start: 7, End: 8}, Text: "y", Leading: []token.Trivia{ws, cm}},
		{Kind: token.EOF, Span: source.Span{Start: 8, End: 8}},
	}
	raw := token.Expand(toks)
	want := []token.Kind{token.Ident, token.Whitespace, token.LineComment, token.Ident, token.EOF}
	if len(raw) != len(want) {
		t.Fatalf("expected %d raw tokens, got %d", len(want), len(raw))
	}
	text := ""
	for i, tk := range raw {
		if tk.Kind != want[i] {
			t.Fatalf("raw[%d] = %v, want %v", i, tk.Kind, want[i])
		}
		if len(tk.Leading) != 0 {
			t.Fatalf("raw[%d] still carries leading trivia", i)
		}
		text += tk.Text
	}
	if text != "x // c\ny" {
		t.Fatalf("concatenated text %q", text)
	}
}

func TestFoldIsInverseOfExpand(t *testing.T) {
	raw := []token.Token{
		{Kind: token.Whitespace, Text: " "},
		{Kind: token.Ident, Text: "a"},
		{Kind: token.BlockComment, Text: "/**/"},
		{Kind: token.Whitespace, Text: "\n"},
		{Kind: token.EOF},
	}
	folded := token.Fold(raw)
	if len(folded) != 2 {
		t.Fatalf("expected 2 significant tokens, got %d", len(folded))
	}
	if len(folded[0].Leading) != 1 || len(folded[1].Leading) != 2 {
		t.Fatalf("unexpected leading: %+v", folded)
	}
	back := token.Expand(folded)
	if len(back) != len(raw) {
		t.Fatalf("expand(fold) lost tokens: %d vs %d", len(back), len(raw))
	}
	for i := range raw {
		if back[i].Kind != raw[i].Kind || back[i].Text != raw[i].Text {
			t.Errorf("token %d: %v %q vs %v %q", i, back[i].Kind, back[i].Text, raw[i].Kind, raw[i].Text)
		}
	}
}

func TestFoldKeepsDanglingTrivia(t *testing.T) {
	folded := token.Fold([]token.Token{{Kind: token.Ident, Text: "a"}, {Kind: token.Whitespace, Text: " "}})
	if len(folded) != 2 || folded[1].Kind != token.Whitespace {
		t.Fatalf("dangling trivia dropped: %+v", folded)
	}
}

package token

import "plexlex/internal/source"

// Trivia is a hidden token kept in front of the significant token that follows it.
type Trivia struct {
	Kind Kind           `msgpack:"k"`
	Span source.Span    `msgpack:"s"`
	Pos  source.LineCol `msgpack:"p"`
	Text string         `msgpack:"t"`
}

// AsTrivia converts a hidden token into trivia.
func (t Token) AsTrivia() Trivia {
	return Trivia{Kind: t.Kind, Span: t.Span, Pos: t.Pos, Text: t.Text}
}

// AsToken converts trivia back into a raw token.
func (tv Trivia) AsToken() Token {
	return Token{Kind: tv.Kind, Span: tv.Span, Pos: tv.Pos, Text: tv.Text}
}

// Expand flattens significant tokens with their leading trivia back into
// the raw token order.
func Expand(toks []Token) []Token {
	out := make([]Token, 0, len(toks)*2)
	for _, t := range toks {
		for _, tv := range t.Leading {
			out = append(out, tv.AsToken())
		}
		t.Leading = nil
		out = append(out, t)
	}
	return out
}

// Fold is the inverse of Expand: hidden tokens move into the Leading of the
// next significant token. Hidden tokens after the last significant one stay
// in the output only if there is no EOF to carry them.
func Fold(raw []Token) []Token {
	out := make([]Token, 0, len(raw))
	var hold []Trivia
	for _, t := range raw {
		if t.IsHidden() {
			hold = append(hold, t.AsTrivia())
			continue
		}
		t.Leading = hold
		hold = nil
		out = append(out, t)
	}
	for _, tv := range hold {
		out = append(out, tv.AsToken())
	}
	return out
}

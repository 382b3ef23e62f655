package lexer

import (
	"plexlex/internal/source"
	"plexlex/internal/token"
)

// Tokenize scans the whole file and returns raw tokens, hidden ones
// included, terminated by EOF. The error is Err() of the lexer used.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, lx.Err()
}

// Significant drops hidden tokens, keeping order.
func Significant(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if !t.IsHidden() {
			out = append(out, t)
		}
	}
	return out
}

// Reconstruct concatenates token text. For raw tokens it returns the
// original input.
func Reconstruct(toks []token.Token) string {
	n := 0
	for _, t := range toks {
		n += len(t.Text)
	}
	buf := make([]byte, 0, n)
	for _, t := range toks {
		for _, tv := range t.Leading {
			buf = append(buf, tv.Text...)
		}
		buf = append(buf, t.Text...)
	}
	return string(buf)
}

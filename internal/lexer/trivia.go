package lexer

import (
	"plexlex/internal/token"
)

const utf8BOM = "\xEF\xBB\xBF"

// scanWhitespace folds a run of ' ', '\t', '\f', '\r', '\n' into one token.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && isSpaceByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Whitespace, start)
}

// scanComment handles "//..." and "/*...*/". When '/' starts neither, the
// cursor stays put and ok is false: it is the '/' operator.
func (lx *Lexer) scanComment() (tok token.Token, ok bool) {
	start := lx.cursor.Mark()
	switch {
	case lx.cursor.EatPrefix("//"):
		// up to and including '\n'; EOF also ends it
		for !lx.cursor.EOF() {
			if lx.cursor.Bump() == '\n' {
				break
			}
		}
		return lx.emit(token.LineComment, start), true

	case lx.cursor.EatPrefix("/*"):
		// no nesting: the first "*/" closes
		for !lx.cursor.EOF() {
			if lx.cursor.EatPrefix("*/") {
				return lx.emit(token.BlockComment, start), true
			}
			lx.cursor.Bump()
		}
		tok = lx.emit(token.Invalid, start)
		lx.fail(&Error{Kind: UnterminatedBlockComment, Span: tok.Span, Pos: tok.Pos, Lexeme: tok.Text})
		return tok, true
	}
	return token.Token{}, false
}

// scanBOM emits a leading UTF-8 byte order mark as whitespace. Content is
// never normalized, so the BOM has to stay in the stream for the round trip.
func (lx *Lexer) scanBOM() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Advance(len(utf8BOM))
	return lx.emit(token.Whitespace, start)
}

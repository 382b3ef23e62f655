package lexer

import (
	"plexlex/internal/token"
)

// scanIdentOrKeyword takes the longest identifier run and only then looks
// it up, so "Startup" is an identifier while "Start" is a keyword. The
// lookup is case-sensitive and Text is the exact source slice.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	if r, size := lx.peekRune(); size == 0 || !isIdentStartRune(r) {
		return lx.scanUnrecognized()
	}
	lx.bumpRune()
	for {
		r, size := lx.peekRune()
		if size == 0 || !isIdentContinueRune(r) {
			break
		}
		lx.cursor.Advance(size)
	}

	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanUnrecognized consumes one rune, or one byte of invalid UTF-8.
func (lx *Lexer) scanUnrecognized() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune()
	tok := lx.emit(token.Invalid, start)
	lx.fail(&Error{Kind: UnrecognizedCharacter, Span: tok.Span, Pos: tok.Pos, Lexeme: tok.Text})
	return tok
}

package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune decodes the rune at the cursor. Invalid UTF-8 yields
// RuneError with size 1; EOF yields size 0.
func (lx *Lexer) peekRune() (rune, int) {
	b, ok := lx.cursor.At(0)
	switch {
	case !ok:
		return utf8.RuneError, 0
	case b < utf8.RuneSelf:
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// bumpRune consumes the rune at the cursor; Col grows by its byte size.
func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	lx.cursor.Advance(size)
}

// numberAfterDot matches ".5": a period directly followed by a digit.
func (lx *Lexer) numberAfterDot() bool {
	b, ok := lx.cursor.At(1)
	return ok && lx.cursor.Peek() == '.' && isDec(b)
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\f', '\r', '\n':
		return true
	}
	return false
}

func isASCIILetter(b byte) bool {
	return (b|0x20) >= 'a' && (b|0x20) <= 'z'
}

func isIdentStartRune(r rune) bool {
	if r < utf8.RuneSelf {
		return r == '_' || isASCIILetter(byte(r))
	}
	return r != utf8.RuneError && unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	if r < utf8.RuneSelf {
		b := byte(r)
		return b == '_' || isASCIILetter(b) || isDec(b)
	}
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }
func isOct(b byte) bool { return '0' <= b && b <= '7' }
func isBin(b byte) bool { return b == '0' || b == '1' }
func isHex(b byte) bool { return isDec(b) || ('a' <= b|0x20 && b|0x20 <= 'f') }

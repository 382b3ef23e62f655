package lexer

import (
	"plexlex/internal/token"
)

// Forms: 0, 0x1F, 0o17, 0b101, 0.5, 0e3, .5, 42, 42., 42.5e-3.
// The lexeme stays raw; radix and float-ness follow from Kind and prefix.
// A radix prefix without a digit ("0x") yields just "0"; the letter starts
// the next token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.cursor.Peek() == '.':
		// ".digits", only reached through numberAfterDot
		lx.cursor.Bump()
		lx.eatFraction()
		return lx.emit(token.FloatLit, start)

	case lx.cursor.Eat('0'):
		if digit := radixDigits(lx.cursor.Peek()); digit != nil {
			if b, ok := lx.cursor.At(1); ok && digit(b) {
				lx.cursor.Bump()
				lx.eatDigits(digit)
				return lx.emit(token.IntLit, start)
			}
		}
		// "0." is 0 then '.': a fraction needs a digit after the point
		if lx.numberAfterDot() {
			lx.cursor.Bump()
			lx.eatFraction()
			return lx.emit(token.FloatLit, start)
		}
	default:
		lx.eatDigits(isDec)
		// "42..." is 42 then an ellipsis
		if lx.cursor.Peek() == '.' && !lx.cursor.HasPrefix("...") {
			lx.cursor.Bump()
			lx.eatFraction()
			return lx.emit(token.FloatLit, start)
		}
	}
	if lx.eatExponent() {
		return lx.emit(token.FloatLit, start)
	}
	return lx.emit(token.IntLit, start)
}

func radixDigits(prefix byte) func(byte) bool {
	switch prefix | 0x20 {
	case 'x':
		return isHex
	case 'o':
		return isOct
	case 'b':
		return isBin
	}
	return nil
}

// eatFraction consumes the digits after the point and an optional exponent.
func (lx *Lexer) eatFraction() {
	lx.eatDigits(isDec)
	lx.eatExponent()
}

func (lx *Lexer) eatDigits(digit func(byte) bool) {
	for !lx.cursor.EOF() && digit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// eatExponent consumes [eE][+-]?digits+ entirely or not at all.
func (lx *Lexer) eatExponent() bool {
	if lx.cursor.Peek()|0x20 != 'e' {
		return false
	}
	mark := lx.cursor.Mark()
	lx.cursor.Bump()
	if s := lx.cursor.Peek(); s == '+' || s == '-' {
		lx.cursor.Bump()
	}
	if lx.cursor.EOF() || !isDec(lx.cursor.Peek()) {
		lx.cursor.Reset(mark)
		return false
	}
	lx.eatDigits(isDec)
	return true
}

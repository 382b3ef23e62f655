package lexer

import (
	"plexlex/internal/diag"
	"plexlex/internal/source"
	"plexlex/internal/token"
)

// scanString разбирает "..." и '...'. Закрывает та же кавычка.
// Сырой перевод строки или EOF до закрывающей кавычки — UnterminatedString,
// токен Invalid до конца строки ('\n' не съедается).
// Неверный escape репортится на экранируемом символе, а Invalid покрывает
// весь литерал.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	var bad []*Error
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			return lx.unterminatedString(start, bad)
		}
		b := lx.cursor.Peek()
		if b == quote {
			lx.cursor.Bump()
			break
		}
		if b != '\\' {
			lx.bumpRune()
			continue
		}
		lx.cursor.Bump() // '\'
		if lx.cursor.EOF() {
			return lx.unterminatedString(start, bad)
		}
		if e := lx.scanEscape(); e != nil {
			bad = append(bad, e)
		}
	}

	if len(bad) == 0 {
		return lx.emit(token.StringLit, start)
	}
	tok := lx.emit(token.Invalid, start)
	for _, e := range bad {
		e.Lexeme = tok.Text
		lx.fail(e, diag.Note{Span: tok.Span, Msg: "in this string literal"})
	}
	return tok
}

func (lx *Lexer) unterminatedString(start State, bad []*Error) token.Token {
	tok := lx.emit(token.Invalid, start)
	for _, e := range bad {
		e.Lexeme = tok.Text
		lx.fail(e, diag.Note{Span: tok.Span, Msg: "in this string literal"})
	}
	lx.fail(&Error{
		Kind:   UnterminatedString,
		Span:   tok.Span,
		Pos:    tok.Pos,
		Lexeme: tok.Text,
	})
	return tok
}

// scanEscape вызывается после '\' и съедает escape-последовательность.
// Допустимо: n t b f r " ' \, сырые LF/CR, uXXXX, восьмеричные 0-377.
// Для неверной формы возвращает ошибку, указывающую на символ после '\'.
func (lx *Lexer) scanEscape() *Error {
	at := lx.cursor.Mark()
	b := lx.cursor.Peek()
	switch {
	case b == 'n', b == 't', b == 'b', b == 'f', b == 'r',
		b == '"', b == '\'', b == '\\', b == '\n', b == '\r':
		lx.cursor.Bump()
		return nil

	case b == 'u':
		lx.cursor.Bump()
		for i := 0; i < 4; i++ {
			if !isHex(lx.cursor.Peek()) || lx.cursor.EOF() {
				return lx.badEscape(at)
			}
			lx.cursor.Bump()
		}
		return nil

	case isOct(b):
		// [0-3] допускает ещё две цифры, [4-7] — одну: значение влезает в байт
		lx.cursor.Bump()
		more := 1
		if b <= '3' {
			more = 2
		}
		for i := 0; i < more && isOct(lx.cursor.Peek()); i++ {
			lx.cursor.Bump()
		}
		return nil
	}

	// неизвестный escape: съедаем одну руну, если это не конец строки
	lx.bumpRune()
	return lx.badEscape(at)
}

func (lx *Lexer) badEscape(at State) *Error {
	end := at.Off + 1
	if lx.cursor.Off > end {
		end = lx.cursor.Off
	}
	return &Error{
		Kind: InvalidEscape,
		Span: source.Span{File: lx.file.ID, Start: at.Off, End: end},
		Pos:  at.Pos(),
	}
}

package lexer

import (
	"fmt"

	"plexlex/internal/diag"
	"plexlex/internal/source"
)

// ErrorKind classifies a lexical error. Kinds are themselves errors, so
// errors.Is(err, lexer.InvalidEscape) matches any *Error of that kind.
type ErrorKind uint8

const (
	UnrecognizedCharacter ErrorKind = iota + 1
	UnterminatedString
	UnterminatedBlockComment
	InvalidEscape
)

func (k ErrorKind) String() string {
	switch k {
	case UnrecognizedCharacter:
		return "UnrecognizedCharacter"
	case UnterminatedString:
		return "UnterminatedString"
	case UnterminatedBlockComment:
		return "UnterminatedBlockComment"
	case InvalidEscape:
		return "InvalidEscape"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

func (k ErrorKind) Error() string { return k.String() }

// Code maps the kind to its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	switch k {
	case UnrecognizedCharacter:
		return diag.LexUnrecognizedChar
	case UnterminatedString:
		return diag.LexUnterminatedString
	case UnterminatedBlockComment:
		return diag.LexUnterminatedBlockComment
	case InvalidEscape:
		return diag.LexInvalidEscape
	}
	return diag.UnknownCode
}

// ErrorKinds lists every kind in declaration order.
func ErrorKinds() []ErrorKind {
	return []ErrorKind{UnrecognizedCharacter, UnterminatedString, UnterminatedBlockComment, InvalidEscape}
}

// Error is a single lexical error. Span and Pos point at the offending
// input: the escaped character for InvalidEscape, the opening quote or
// comment marker for unterminated constructs. Lexeme is the text of the
// Invalid token that was emitted for it.
type Error struct {
	Kind   ErrorKind
	Span   source.Span
	Pos    source.LineCol
	Lexeme string
}

// Message is the human-readable part without position.
func (e *Error) Message() string {
	switch e.Kind {
	case UnrecognizedCharacter:
		return fmt.Sprintf("unrecognized character %q", e.Lexeme)
	case UnterminatedString:
		return "unterminated string literal"
	case UnterminatedBlockComment:
		return "unterminated block comment"
	case InvalidEscape:
		return "invalid escape sequence in string literal"
	}
	return e.Kind.String()
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Col, e.Message())
}

func (e *Error) Unwrap() error { return e.Kind }

package token

import (
	"plexlex/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind           `msgpack:"k"`
	Span    source.Span    `msgpack:"s"`
	Pos     source.LineCol `msgpack:"p"`
	Text    string         `msgpack:"t"`
	Leading []Trivia       `msgpack:"l,omitempty"`
}

// IsHidden reports whether the token is whitespace or a comment.
func (t Token) IsHidden() bool { return t.Kind.IsHidden() }

// IsLiteral reports whether the token is a numeric, string or literal keyword.
func (t Token) IsLiteral() bool {
	switch t.Kind.Group() {
	case GroupLiteral, GroupLiteralKeyword:
		return true
	default:
		return false
	}
}

// IsPunctOrOp reports whether the token is punctuation or a symbolic operator.
// Spelled logical operators (AND, OR, NOT) are keywords, not operators.
func (t Token) IsPunctOrOp() bool {
	if t.Kind.Group() == GroupPunct {
		return true
	}
	switch t.Text {
	case "&&", "||", "!":
		return true
	}
	return false
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	if t.Kind >= KwBoolean && t.Kind <= KwPprint {
		return !t.IsPunctOrOp()
	}
	return false
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsFloat reports whether a numeric literal is floating point.
func (t Token) IsFloat() bool { return t.Kind == FloatLit }

// IntBase returns the radix implied by an integer literal prefix, 0 for non-integers.
func (t Token) IntBase() int {
	if t.Kind != IntLit {
		return 0
	}
	if len(t.Text) > 1 && t.Text[0] == '0' {
		switch t.Text[1] {
		case 'x', 'X':
			return 16
		case 'o', 'O':
			return 8
		case 'b', 'B':
			return 2
		}
	}
	return 10
}

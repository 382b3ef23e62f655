package lexer

import (
	"plexlex/internal/token"
)

// Longest match first. '&', '|' and '#' alone are not operators.
var multiByteOps = [...]struct {
	text string
	kind token.Kind
}{
	{"...", token.Ellipsis},
	{"#(", token.HashParen},
	{"==", token.DEquals},
	{"!=", token.NEquals},
	{"<=", token.LEq},
	{">=", token.GEq},
	{"&&", token.And},
	{"||", token.Or},
}

var singleByteOps = map[byte]token.Kind{
	'(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace,
	'[': token.LBracket, ']': token.RBracket,
	',': token.Comma, ';': token.Semicolon, ':': token.Colon, '.': token.Period,
	'=': token.Equals, '!': token.Not, '<': token.Less, '>': token.Greater,
	'+': token.Plus, '-': token.Minus, '*': token.Asterisk, '/': token.Slash, '%': token.Percent,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	for _, op := range multiByteOps {
		if lx.cursor.EatPrefix(op.text) {
			return lx.emit(op.kind, start)
		}
	}
	kind, ok := singleByteOps[lx.cursor.Peek()]
	if !ok {
		return lx.scanUnrecognized()
	}
	lx.cursor.Bump()
	return lx.emit(kind, start)
}

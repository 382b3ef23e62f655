package lexer

import (
	"iter"
	"unicode/utf8"

	"plexlex/internal/diag"
	"plexlex/internal/errwrap"
	"plexlex/internal/source"
	"plexlex/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // significant token buffered by Peek
	lookAt State          // position before look
	hold   []token.Trivia // trivia collected for the next significant token
	halted bool           // fail-fast stop: only EOF from here on
	errs   []*Error
	seen   map[errKey]struct{}
}

type errKey struct {
	kind ErrorKind
	off  uint32
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Scan returns the next raw token, whitespace and comments included. A
// lexical error yields an Invalid token; past the end Scan keeps
// returning EOF.
func (lx *Lexer) Scan() token.Token {
	if lx.halted || lx.cursor.EOF() {
		return lx.eof()
	}

	if lx.cursor.Off == 0 && lx.cursor.HasPrefix(utf8BOM) {
		return lx.scanBOM()
	}

	ch := lx.cursor.Peek()
	switch {
	case isSpaceByte(ch):
		return lx.scanWhitespace()

	case ch == '/':
		if tok, ok := lx.scanComment(); ok {
			return tok
		}
		return lx.scanOperatorOrPunct()

	case ch == '_', isASCIILetter(ch), ch >= utf8.RuneSelf:
		// non-letter runes end up in scanUnrecognized
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '.' && lx.numberAfterDot():
		return lx.scanNumber()

	case ch == '"' || ch == '\'':
		return lx.scanString()

	default:
		return lx.scanOperatorOrPunct()
	}
}

// Next returns the next significant token with the hidden tokens before it
// in Leading. Trailing trivia ends up on EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.hold = nil
	for {
		tok := lx.Scan()
		if tok.IsHidden() {
			lx.hold = append(lx.hold, tok.AsTrivia())
			continue
		}
		tok.Leading = lx.hold
		lx.hold = nil
		return tok
	}
}

// Peek returns what Next would, without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	lx.lookAt = lx.cursor.Mark()
	t := lx.Next()
	lx.look = &t
	return t
}

// Save returns the current position. A token buffered by Peek is not
// consumed yet, so the returned state points before it.
func (lx *Lexer) Save() State {
	if lx.look != nil {
		return lx.lookAt
	}
	return lx.cursor.Mark()
}

// Restore moves the lexer to a state obtained from Save on the same file.
// Scanning resumes from there, including after a fail-fast stop. Errors
// already recorded stay recorded and are not reported twice.
func (lx *Lexer) Restore(s State) {
	lx.cursor.Reset(s)
	lx.look = nil
	lx.hold = nil
	lx.halted = false
}

// All yields raw tokens, hidden ones included, up to but not including EOF.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := lx.Scan()
			if tok.Kind == token.EOF || !yield(tok) {
				return
			}
		}
	}
}

// Err returns nil when no lexical error was seen, the first error in
// fail-fast mode, and all of them aggregated in collect-all mode.
func (lx *Lexer) Err() error {
	var err error
	for _, e := range lx.errs {
		err = errwrap.Append(err, e)
	}
	return err
}

// Errors returns the recorded errors in source order of discovery.
func (lx *Lexer) Errors() []*Error {
	return lx.errs
}

// File returns the file being tokenized.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) eof() token.Token {
	st := lx.cursor.Mark()
	return token.Token{
		Kind: token.EOF,
		Span: lx.cursor.SpanFrom(st),
		Pos:  st.Pos(),
	}
}

// emit builds a token from start to the cursor.
func (lx *Lexer) emit(k token.Kind, start State) token.Token {
	return token.Token{
		Kind: k,
		Span: lx.cursor.SpanFrom(start),
		Pos:  start.Pos(),
		Text: lx.cursor.Text(start),
	}
}

// fail records e and, in fail-fast mode, halts the lexer. The caller still
// returns its Invalid token. An error of the same kind at the same offset
// is recorded once, which keeps rescans after Restore quiet.
func (lx *Lexer) fail(e *Error, notes ...diag.Note) {
	failFast := lx.opts.Mode == ModeFailFast
	if failFast {
		lx.halted = true
		if len(lx.errs) > 0 {
			return
		}
	}
	key := errKey{kind: e.Kind, off: e.Span.Start}
	if _, dup := lx.seen[key]; dup {
		return
	}
	if lx.seen == nil {
		lx.seen = make(map[errKey]struct{})
	}
	lx.seen[key] = struct{}{}
	lx.errs = append(lx.errs, e)
	lx.report(e, notes)
}

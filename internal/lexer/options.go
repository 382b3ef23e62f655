package lexer

import (
	"plexlex/internal/diag"
)

// Mode selects what the lexer does after the first lexical error.
type Mode uint8

const (
	// ModeCollectAll records the error, emits an Invalid token and keeps going.
	ModeCollectAll Mode = iota
	// ModeFailFast stops at the first error: the Invalid token is still
	// returned, every later Scan yields EOF.
	ModeFailFast
)

func (m Mode) String() string {
	switch m {
	case ModeCollectAll:
		return "collect"
	case ModeFailFast:
		return "failfast"
	}
	return "unknown"
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "collect":
		return ModeCollectAll, true
	case "failfast", "fail-fast":
		return ModeFailFast, true
	}
	return ModeCollectAll, false
}

type Options struct {
	Reporter diag.Reporter // optional, errors stay available from Err
	Mode     Mode
}

func (lx *Lexer) report(e *Error, notes []diag.Note) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(e.Kind.Code(), diag.SevError, e.Span, e.Message(), notes)
}

package diag

import (
	"plexlex/internal/source"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{"INFO", "WARNING", "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Label is the lower-case name used by the short format.
func (s Severity) Label() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "info"
}

type Note struct {
	Span source.Span `msgpack:"s"`
	Msg  string      `msgpack:"m"`
}

// Diagnostic is one reported problem. The msgpack tags keep cached
// payloads compact.
type Diagnostic struct {
	Severity Severity    `msgpack:"v"`
	Code     Code        `msgpack:"c"`
	Message  string      `msgpack:"m"`
	Primary  source.Span `msgpack:"p"`
	Notes    []Note      `msgpack:"n,omitempty"`
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns d with a note appended.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

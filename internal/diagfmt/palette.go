package diagfmt

import (
	"github.com/fatih/color"

	"plexlex/internal/diag"
	"plexlex/internal/token"
)

// palette holds the colors of one output call. Colors are forced on or
// off so that the --color flag wins over terminal detection.
type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	caret, note     *color.Color
	keyword         *color.Color
	ident           *color.Color
	literal         *color.Color
	punct           *color.Color
	hidden          *color.Color
	invalid         *color.Color
	dim             *color.Color
}

func newPalette(enabled bool) *palette {
	p := &palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		code:    color.New(color.Bold),
		path:    color.New(color.FgWhite, color.Bold),
		caret:   color.New(color.FgRed, color.Bold),
		note:    color.New(color.FgBlue, color.Bold),
		keyword: color.New(color.FgMagenta),
		ident:   color.New(color.FgWhite),
		literal: color.New(color.FgGreen),
		punct:   color.New(color.FgYellow),
		hidden:  color.New(color.FgHiBlack),
		invalid: color.New(color.FgRed, color.Underline),
		dim:     color.New(color.Faint),
	}
	for _, c := range []*color.Color{
		p.err, p.warn, p.info, p.code, p.path, p.caret, p.note,
		p.keyword, p.ident, p.literal, p.punct, p.hidden, p.invalid, p.dim,
	} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

func (p *palette) kind(tok token.Token) *color.Color {
	switch {
	case tok.Kind == token.Invalid:
		return p.invalid
	case tok.IsHidden():
		return p.hidden
	case tok.IsKeyword():
		return p.keyword
	case tok.IsLiteral():
		return p.literal
	case tok.IsIdent():
		return p.ident
	case tok.IsPunctOrOp():
		return p.punct
	default:
		return p.dim
	}
}

package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"plexlex/internal/source"
	"plexlex/internal/token"
)

const (
	kindColumn = 15
	textColumn = 24
)

type TokenOutput struct {
	Kind    string         `json:"kind" yaml:"kind" msgpack:"kind"`
	Text    string         `json:"text,omitempty" yaml:"text,omitempty" msgpack:"text,omitempty"`
	Span    source.Span    `json:"span" yaml:"span" msgpack:"span"`
	Start   source.LineCol `json:"start" yaml:"start" msgpack:"start"`
	End     source.LineCol `json:"end" yaml:"end" msgpack:"end"`
	Leading []string       `json:"leading,omitempty" yaml:"leading,omitempty" msgpack:"leading,omitempty"`
}

// FileTokens groups the token listing of one file for directory output.
type FileTokens struct {
	Path   string        `json:"path" yaml:"path" msgpack:"path"`
	Tokens []TokenOutput `json:"tokens" yaml:"tokens" msgpack:"tokens"`
}

// BuildTokenOutput converts tokens up to and including EOF.
func BuildTokenOutput(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Span:  tok.Span,
			Start: start,
			End:   end,
		}
		for _, trivia := range tok.Leading {
			out.Leading = append(out.Leading, trivia.Kind.String())
		}
		output = append(output, out)

		if tok.Kind == token.EOF {
			break
		}
	}
	return output
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet, opts TokenOpts) error {
	p := newPalette(opts.Color)
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)
		c := p.kind(tok)

		var b strings.Builder
		fmt.Fprintf(&b, "%4d: %s", i+1, c.Sprint(runewidth.FillRight(tok.Kind.String(), kindColumn)))
		text := ""
		if tok.Text != "" {
			text = strconv.Quote(tok.Text)
		}
		fmt.Fprintf(&b, " %s", runewidth.FillRight(text, textColumn))
		b.WriteString(p.dim.Sprintf(" %d:%d-%d:%d", startPos.Line, startPos.Col, endPos.Line, endPos.Col))

		if len(tok.Leading) > 0 {
			leading := make([]string, 0, len(tok.Leading))
			for _, trivia := range tok.Leading {
				leading = append(leading, trivia.Kind.String())
			}
			b.WriteString(p.hidden.Sprintf(" (leading: %s)", strings.Join(leading, ", ")))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// Listing is the raw input for a multi-file token listing.
type Listing struct {
	Path   string
	Tokens []token.Token
}

// FormatTokens writes tokens of a single file in format.
func FormatTokens(w io.Writer, format Format, tokens []token.Token, fs *source.FileSet, opts TokenOpts) error {
	if format == FormatPretty {
		return FormatTokensPretty(w, tokens, fs, opts)
	}
	return Encode(w, format, BuildTokenOutput(tokens, fs))
}

// FormatListings writes several files. Pretty output separates them with
// a path header; structured formats produce a list of FileTokens.
func FormatListings(w io.Writer, format Format, listings []Listing, fs *source.FileSet, opts TokenOpts) error {
	if format != FormatPretty {
		files := make([]FileTokens, 0, len(listings))
		for _, l := range listings {
			files = append(files, FileTokens{Path: l.Path, Tokens: BuildTokenOutput(l.Tokens, fs)})
		}
		return Encode(w, format, files)
	}
	p := newPalette(opts.Color)
	for i, l := range listings {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, p.path.Sprintf("== %s ==", l.Path)); err != nil {
			return err
		}
		if err := FormatTokensPretty(w, l.Tokens, fs, opts); err != nil {
			return err
		}
	}
	return nil
}

package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"plexlex/internal/errwrap"
	"plexlex/internal/lexer"
	"plexlex/internal/source"
	"plexlex/internal/token"
)

// CheckRoundTrip reports whether the concatenated text of toks, leading
// trivia included, is exactly the content of sf.
func CheckRoundTrip(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	got := lexer.Reconstruct(toks)
	if got == string(sf.Content) {
		return nil
	}
	n := min(len(got), len(sf.Content))
	at := n
	for i := range n {
		if got[i] != sf.Content[i] {
			at = i
			break
		}
	}
	return fmt.Errorf("round trip differs at byte %d: reconstructed %d bytes, source %d bytes", at, len(got), len(sf.Content))
}

// CheckSpanInvariants runs the structural checks on a raw token stream
// (as returned by lexer.Tokenize):
// 1) spans point to sf and are contiguous, the first starting at 0
// 2) Text equals the content under Span and Pos matches Span.Start
// 3) only the last token is EOF and it is empty
// In fail-fast streams EOF may come before the end of content; pass
// complete=false to allow that.
func CheckSpanInvariants(toks []token.Token, sf *source.File, complete bool) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var errs error
	var next uint32
	for i, tok := range toks {
		sp := tok.Span
		if sp.File != sf.ID {
			errs = errwrap.Append(errs, fmt.Errorf("token %d: file %d, want %d", i, sp.File, sf.ID))
		}
		if sp.Start != next {
			errs = errwrap.Append(errs, fmt.Errorf("token %d (%s): starts at %d, previous ended at %d", i, tok.Kind, sp.Start, next))
		}
		if sp.End < sp.Start || sp.End > lenContent {
			errs = errwrap.Append(errs, fmt.Errorf("token %d (%s): bad span %v", i, tok.Kind, sp))
			return errs
		}
		if text := string(sf.Content[sp.Start:sp.End]); text != tok.Text {
			errs = errwrap.Append(errs, fmt.Errorf("token %d (%s): text %q, content %q", i, tok.Kind, tok.Text, text))
		}
		if pos := sf.Position(sp.Start); pos != tok.Pos {
			errs = errwrap.Append(errs, fmt.Errorf("token %d (%s): pos %d:%d, want %d:%d", i, tok.Kind, tok.Pos.Line, tok.Pos.Col, pos.Line, pos.Col))
		}
		last := i == len(toks)-1
		switch {
		case tok.Kind == token.EOF && !last:
			errs = errwrap.Append(errs, fmt.Errorf("token %d: EOF before the end of the stream", i))
		case last && tok.Kind != token.EOF:
			errs = errwrap.Append(errs, fmt.Errorf("stream does not end with EOF (last is %s)", tok.Kind))
		case tok.Kind == token.EOF && !sp.Empty():
			errs = errwrap.Append(errs, fmt.Errorf("EOF has non-empty span %v", sp))
		case !last && sp.Empty():
			errs = errwrap.Append(errs, fmt.Errorf("token %d (%s): empty span", i, tok.Kind))
		}
		next = sp.End
	}
	if complete && next != lenContent {
		errs = errwrap.Append(errs, fmt.Errorf("stream ends at %d, content has %d bytes", next, lenContent))
	}
	return errs
}

package lexer

import (
	"fmt"

	"fortio.org/safecast"

	"plexlex/internal/source"
)

// State is a saved lexer position. Line and Col are 1-based, Col counts
// bytes. Restoring a State is the only way to move backwards.
type State struct {
	Off  uint32
	Line uint32
	Col  uint32
}

func (s State) Pos() source.LineCol {
	return source.LineCol{Line: s.Line, Col: s.Col}
}

// Cursor walks the bytes of one file and keeps line/column in step.
type Cursor struct {
	File  *source.File
	Off   uint32
	Line  uint32
	Col   uint32
	Limit uint32 // len(File.Content)
}

func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("%s: file too large: %w", f.Path, err))
	}
	return Cursor{File: f, Line: 1, Col: 1, Limit: limit}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Peek returns the current byte, or 0 at EOF. A literal NUL in the input
// also reads as 0, so callers that care check EOF.
func (c *Cursor) Peek() byte {
	b, _ := c.At(0)
	return b
}

// At returns the byte k positions ahead of the cursor.
func (c *Cursor) At(k uint32) (byte, bool) {
	if c.Off+k >= c.Limit {
		return 0, false
	}
	return c.File.Content[c.Off+k], true
}

// HasPrefix reports whether the remaining input starts with s.
func (c *Cursor) HasPrefix(s string) bool {
	rest := c.File.Content[c.Off:c.Limit]
	return len(rest) >= len(s) && string(rest[:len(s)]) == s
}

// Bump consumes one byte and returns it; 0 at EOF.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	if b == '\n' {
		c.Line++
		c.Col = 1
	} else {
		c.Col++
	}
	return b
}

// Advance consumes up to n bytes.
func (c *Cursor) Advance(n int) {
	for range n {
		c.Bump()
	}
}

// Eat consumes b if it is the current byte.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Bump()
	return true
}

// EatPrefix consumes s if the input continues with it.
func (c *Cursor) EatPrefix(s string) bool {
	if !c.HasPrefix(s) {
		return false
	}
	c.Advance(len(s))
	return true
}

func (c *Cursor) Mark() State {
	return State{Off: c.Off, Line: c.Line, Col: c.Col}
}

func (c *Cursor) Reset(m State) {
	c.Off, c.Line, c.Col = m.Off, m.Line, m.Col
}

// SpanFrom is the span from m to the cursor.
func (c *Cursor) SpanFrom(m State) source.Span {
	return source.Span{File: c.File.ID, Start: m.Off, End: c.Off}
}

// Text is the source between m and the cursor.
func (c *Cursor) Text(m State) string {
	return string(c.File.Content[m.Off:c.Off])
}

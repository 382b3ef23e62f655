package source

import (
	"fmt"
)

type Span struct {
	File  FileID `json:"file" yaml:"file"`
	Start uint32 `json:"start" yaml:"start"` // inclusive byte offset
	End   uint32 `json:"end" yaml:"end"`     // exclusive byte offset
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both spans of the same file.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Adjacent reports whether other starts exactly where s ends.
func (s Span) Adjacent(other Span) bool {
	return s.File == other.File && s.End == other.Start
}

package source

import (
	"path/filepath"
	"slices"
)

// FileID identifies a file within its FileSet.
type FileID uint32

// FileFlags describe how a file's content was obtained.
type FileFlags uint8

const (
	FileVirtual FileFlags = 1 << iota
	FileHasBOM
	FileHasCRLF
	FileTranscoded
)

// File is one source buffer. Content is never rewritten after Add, so
// every span of a token can be sliced out of it byte for byte.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Flags   FileFlags
}

// LineCol is a 1-based position; Col counts bytes.
type LineCol struct {
	Line uint32 `json:"line" yaml:"line" msgpack:"line"`
	Col  uint32 `json:"col" yaml:"col" msgpack:"col"`
}

// Position converts a byte offset into a line and column. The '\n' itself
// belongs to the line it ends.
func (f *File) Position(off uint32) LineCol {
	before, _ := slices.BinarySearch(f.LineIdx, off)
	lineStart := uint32(0)
	if before > 0 {
		lineStart = f.LineIdx[before-1] + 1
	}
	return LineCol{Line: uint32(before) + 1, Col: off - lineStart + 1} // #nosec G115 -- before <= len(LineIdx)
}

// GetLine returns line n (1-based) without its terminator, or "" when the
// file has no such line.
func (f *File) GetLine(n uint32) string {
	if n == 0 || int(n) > len(f.LineIdx)+1 {
		return ""
	}
	start := 0
	if n > 1 {
		start = int(f.LineIdx[n-2]) + 1
	}
	end := len(f.Content)
	if int(n) <= len(f.LineIdx) {
		end = int(f.LineIdx[n-1])
	}
	if start > end {
		return ""
	}
	line := f.Content[start:end]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return string(line)
}

// FormatPath renders the path for display. mode is one of "absolute",
// "relative", "basename" or "auto"; relative paths are computed against
// baseDir, or the working directory when it is empty. Any failure falls
// back to the stored path.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(f.Path); err == nil {
			return abs
		}
	case "relative":
		if baseDir == "" {
			baseDir = "."
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case "basename":
		return BaseName(f.Path)
	case "auto":
		// long absolute paths drown the message
		if filepath.IsAbs(f.Path) && len(f.Path) >= 40 {
			return BaseName(f.Path)
		}
	}
	return f.Path
}

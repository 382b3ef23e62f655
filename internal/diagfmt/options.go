package diagfmt

import (
	"fmt"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// Format selects the encoding of token, keyword and diagnostic listings.
type Format string

const (
	FormatPretty  Format = "pretty"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat accepts the names of the Format constants, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatPretty, nil
	case FormatPretty, FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected pretty|json|yaml|msgpack)", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // source lines shown above the primary line
	PathMode  PathMode
	ShowNotes bool
}

// DiagOpts configures structured output of diagnostics.
type DiagOpts struct {
	IncludePositions bool // add line/col ranges
	IncludeNotes     bool
	PathMode         PathMode
	Max              int // cuts the listing only, the Bag is untouched
}

// TokenOpts configures token listings.
type TokenOpts struct {
	Color bool
}

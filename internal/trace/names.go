package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only error points
	LevelPhase               // driver + phase boundaries
	LevelDetail              // per-file events
	LevelDebug               // everything
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

func (l Level) String() string { return nameOf(levelNames[:], int(l)) }

// ParseLevel converts a flag value to a Level, ignoring case.
func ParseLevel(s string) (Level, error) {
	i, err := parseName("trace level", levelNames[:], s)
	return Level(i), err // #nosec G115 -- index into levelNames
}

// ShouldEmit reports whether spans and points of scope pass at this level.
// LevelError lets through nothing but explicit Error points.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelPhase:
		return scope <= ScopePhase
	case LevelDetail:
		return scope <= ScopeFile
	case LevelDebug:
		return true
	}
	return false
}

// Scope indicates the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // command-level work
	ScopePhase                   // load, tokenize, render
	ScopeFile                    // one source file
	ScopeToken                   // individual lexical errors and cache lookups
)

var scopeNames = [...]string{"", "driver", "phase", "file", "token"}

func (s Scope) String() string { return nameOf(scopeNames[:], int(s)) }

func (s Scope) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat // periodic liveness signal
)

var kindNames = [...]string{"", "begin", "end", "point", "heartbeat"}

func (k Kind) String() string { return nameOf(kindNames[:], int(k)) }

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// StorageMode determines where events are kept.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // last N in memory
	ModeBoth
)

var modeNames = [...]string{"", "stream", "ring", "both"}

func (m StorageMode) String() string { return nameOf(modeNames[:], int(m)) }

// ParseMode converts a flag value to a StorageMode.
func ParseMode(s string) (StorageMode, error) {
	i, err := parseName("storage mode", modeNames[1:], s)
	if err != nil {
		return ModeStream, err
	}
	return StorageMode(i + 1), nil // #nosec G115 -- index into modeNames
}

// Format is the encoding of trace events.
type Format uint8

const (
	FormatAuto   Format = iota // pick by output path
	FormatText                 // human-readable text
	FormatNDJSON               // newline-delimited JSON
)

var formatNames = [...]string{"auto", "text", "ndjson"}

func (f Format) String() string { return nameOf(formatNames[:], int(f)) }

// ParseFormat converts a flag value to a Format; "json" is accepted for
// ndjson and the empty string for auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return FormatAuto, nil
	case "json":
		return FormatNDJSON, nil
	}
	i, err := parseName("trace format", formatNames[:], s)
	return Format(i), err // #nosec G115 -- index into formatNames
}

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) || names[i] == "" {
		return "unknown"
	}
	return names[i]
}

func parseName(what string, names []string, s string) (uint8, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for i, name := range names {
		if name != "" && name == needle {
			return uint8(i), nil // #nosec G115 -- tables are tiny
		}
	}
	return 0, fmt.Errorf("invalid %s: %q (expected: %s)", what, s, strings.Join(nonEmpty(names), "|"))
}

func nonEmpty(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return out
}

package trace

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
	"time"
)

// FormatEvent renders ev as one line. Text output shows time relative to
// start, the moment tracing began.
func FormatEvent(ev *Event, format Format, start time.Time) []byte {
	if format == FormatNDJSON {
		line, err := json.Marshal(ev)
		if err != nil {
			return nil
		}
		return append(line, '\n')
	}
	return appendText(make([]byte, 0, 96), ev, start)
}

var kindMarks = [...]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindHeartbeat: "♡ ",
}

// appendText writes
//
//	[   1.250ms]   g7 → name (detail) {k=v, ...}
//
// Child events are indented. The goroutine is shown for file and token
// events, which interleave in directory runs.
func appendText(b []byte, ev *Event, start time.Time) []byte {
	var elapsed time.Duration
	if !start.IsZero() {
		elapsed = max(ev.Time.Sub(start), 0)
	}
	ms := strconv.FormatFloat(float64(elapsed.Microseconds())/1000, 'f', 3, 64)
	b = append(b, '[')
	for range 9 - len(ms) {
		b = append(b, ' ')
	}
	b = append(b, ms...)
	b = append(b, "ms] "...)

	if ev.ParentID > 0 {
		b = append(b, "  "...)
	}
	if ev.GID != 0 && ev.Scope >= ScopeFile {
		b = append(b, 'g')
		b = strconv.AppendUint(b, ev.GID, 10)
		b = append(b, ' ')
	}
	if int(ev.Kind) < len(kindMarks) {
		b = append(b, kindMarks[ev.Kind]...)
	}
	b = append(b, ev.Name...)
	if ev.Detail != "" {
		b = append(b, " ("...)
		b = append(b, ev.Detail...)
		b = append(b, ')')
	}
	if len(ev.Extra) > 0 {
		b = append(b, " {"...)
		for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			if i > 0 {
				b = append(b, ", "...)
			}
			b = append(b, k...)
			b = append(b, '=')
			b = append(b, ev.Extra[k]...)
		}
		b = append(b, '}')
	}
	return append(b, '\n')
}

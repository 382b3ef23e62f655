package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

// Event is one trace record.
type Event struct {
	Time     time.Time         `json:"time"`
	Seq      uint64            `json:"seq"` // stamped by the tracer that stores the event
	Kind     Kind              `json:"kind"`
	Scope    Scope             `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"` // 0 for root spans
	GID      uint64            `json:"gid,omitempty"`       // goroutine that emitted the event
	Name     string            `json:"name"`                // e.g. "tokenize", "file:plans/a.ple"
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// nextSeq returns the next global sequence number.
func nextSeq() uint64 { return seqCounter.Add(1) }

// errorEventName marks points emitted by Error; they pass every level but off.
const errorEventName = "error"

// goroutineID parses the ID from the "goroutine N [state]:" header of the
// current stack. Files of a directory run are lexed on different
// goroutines; the ID keeps their spans apart in the output.
func goroutineID() uint64 {
	var buf [64]byte
	stack := buf[:runtime.Stack(buf[:], false)]
	stack, ok := bytes.CutPrefix(stack, []byte("goroutine "))
	if !ok {
		return 0
	}
	digits, _, ok := bytes.Cut(stack, []byte{' '})
	if !ok {
		return 0
	}
	gid, err := strconv.ParseUint(string(digits), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is an open interval of work. A span that its tracer filters out is
// inert: ID is 0 and End does nothing.
type Span struct {
	tracer   Tracer
	id       uint64
	parentID uint64
	gid      uint64
	scope    Scope
	name     string
	started  time.Time
	extra    map[string]string
}

func (s *Span) live() bool {
	return s != nil && s.id != 0
}

// Begin emits the begin event of a new span under parent (0 for a root).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{}
	}
	sp := &Span{
		tracer:   t,
		id:       spanCounter.Add(1),
		parentID: parent,
		gid:      goroutineID(),
		scope:    scope,
		name:     name,
		started:  time.Now(),
	}
	t.Emit(sp.event(KindSpanBegin, sp.started, ""))
	return sp
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parentID,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
	}
}

// End emits the end event with the collected extras and returns the span
// duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return now.Sub(s.started)
}

// WithExtra records a key/value pair for the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 4)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
	})
}

// Error emits an error point. It is recorded at every level except off.
func Error(t Tracer, err error, parent uint64) {
	if t == nil || !t.Enabled() || err == nil {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    ScopeDriver,
		ParentID: parent,
		GID:      goroutineID(),
		Name:     errorEventName,
		Detail:   err.Error(),
	})
}

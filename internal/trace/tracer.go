package trace

import (
	"io"
	"os"
	"strings"
	"time"

	"plexlex/internal/errwrap"
)

const defaultRingSize = 4096

// Tracer receives trace events. Implementations are safe for concurrent
// use: directory runs emit from every worker.
type Tracer interface {
	Emit(ev *Event)
	// Flush writes out buffered events.
	Flush() error
	// Close flushes and releases the output.
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// Config holds tracer configuration.
type Config struct {
	Level      Level
	Mode       StorageMode   // ModeStream when zero
	Format     Format        // FormatAuto picks NDJSON for .ndjson/.jsonl paths
	Output     io.Writer     // stream destination; OutputPath is used when nil
	OutputPath string        // "" or "-" for stderr
	RingSize   int           // ring capacity, 4096 when zero
	Heartbeat  time.Duration // read by the caller, see StartHeartbeat
}

// New creates the tracer described by cfg. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	if cfg.Mode == 0 {
		cfg.Mode = ModeStream
	}
	if cfg.Mode == ModeRing {
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	}

	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}
	w, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	stream := NewStreamTracer(w, cfg.Level, format)
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return &fanout{level: cfg.Level, tracers: []Tracer{stream, NewRingTracer(cfg.RingSize, cfg.Level)}}, nil
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, errwrap.Wrapf(err, "failed to open trace output")
	}
	return f, nil
}

// Nop discards everything.
var Nop Tracer = nopTracer{}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// fanout copies every event to each of its tracers (ModeBoth).
type fanout struct {
	level   Level
	tracers []Tracer
}

func (t *fanout) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *fanout) Flush() error {
	var err error
	for _, tr := range t.tracers {
		err = errwrap.Append(err, tr.Flush())
	}
	return err
}

func (t *fanout) Close() error {
	var err error
	for _, tr := range t.tracers {
		err = errwrap.Append(err, tr.Close())
	}
	return err
}

func (t *fanout) Level() Level  { return t.level }
func (t *fanout) Enabled() bool { return t.level > LevelOff }

// accepts filters by level; heartbeats and error points pass whenever
// tracing is on.
func accepts(level Level, ev *Event) bool {
	if level == LevelOff {
		return false
	}
	if ev.Kind == KindHeartbeat || ev.Name == errorEventName {
		return true
	}
	return level.ShouldEmit(ev.Scope)
}

package trace

import (
	"bufio"
	"io"
	"os"
	"sync"
	"time"
)

// StreamTracer writes events to an io.Writer as they arrive. Output to a
// file is buffered and reaches the disk on Flush or Close; stdout and
// stderr are written through so that a crash keeps the last events.
type StreamTracer struct {
	mu     sync.Mutex
	dst    io.Writer
	buf    *bufio.Writer // nil when writing through
	level  Level
	format Format
	start  time.Time
}

// NewStreamTracer creates a new StreamTracer.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	t := &StreamTracer{
		dst:    w,
		level:  level,
		format: format,
		start:  time.Now(),
	}
	if f, ok := w.(*os.File); ok && !isStdio(f) {
		t.buf = bufio.NewWriterSize(f, 64<<10)
	}
	return t
}

func isStdio(f *os.File) bool {
	return f == os.Stderr || f == os.Stdout
}

// Emit writes ev. Write errors are dropped: a broken trace sink never
// fails tokenization.
func (t *StreamTracer) Emit(ev *Event) {
	if !accepts(t.level, ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	ev.Seq = nextSeq()
	data := FormatEvent(ev, t.format, t.start)
	if t.buf != nil {
		_, _ = t.buf.Write(data)
		return
	}
	_, _ = t.dst.Write(data)
}

// Flush drains the buffer and syncs file outputs.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flushLocked()
}

func (t *StreamTracer) flushLocked() error {
	if t.buf != nil {
		if err := t.buf.Flush(); err != nil {
			return err
		}
	}
	switch w := t.dst.(type) {
	case *os.File:
		if isStdio(w) {
			return nil
		}
		return w.Sync()
	case interface{ Flush() error }:
		return w.Flush()
	}
	return nil
}

// Close flushes and closes the writer unless it is stdout or stderr.
func (t *StreamTracer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.flushLocked(); err != nil {
		return err
	}
	if f, ok := t.dst.(*os.File); ok && isStdio(f) {
		return nil
	}
	if closer, ok := t.dst.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

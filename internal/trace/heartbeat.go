package trace

import (
	"runtime"
	"strconv"
	"sync"
	"time"
)

// Probe returns the values attached to each heartbeat as Extra.
type Probe func() map[string]string

// RuntimeProbe reports goroutine count and live heap, enough to tell a
// stalled directory run from a busy one.
func RuntimeProbe() map[string]string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return map[string]string{
		"goroutines": strconv.Itoa(runtime.NumGoroutine()),
		"heap_kb":    strconv.FormatUint(ms.HeapAlloc>>10, 10),
	}
}

// Heartbeat emits a heartbeat event every interval until stopped.
// Heartbeats without a matching span end point at a file the lexer is
// stuck on.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat starts the heartbeat goroutine. probe may be nil. It
// returns nil, a valid receiver for Stop, when tracing is off or interval
// is not positive.
func StartHeartbeat(tracer Tracer, interval time.Duration, probe Probe) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go h.run(tracer, interval, probe)
	return h
}

func (h *Heartbeat) run(tracer Tracer, interval time.Duration, probe Probe) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	gid := goroutineID()
	for beat := 1; ; beat++ {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			ev := &Event{
				Time:   now,
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    gid,
				Name:   "heartbeat",
				Detail: "#" + strconv.Itoa(beat),
			}
			if probe != nil {
				ev.Extra = probe()
			}
			tracer.Emit(ev)
		}
	}
}

// Stop ends the heartbeat and waits for its goroutine. Safe to call more
// than once and on nil.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}

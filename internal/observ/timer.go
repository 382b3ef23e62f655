package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer records wall-clock phases of one CLI run (config, tokenize,
// render, ...). Phases keep the order they were started in. Safe for
// concurrent use; a nil *Timer records nothing.
type Timer struct {
	mu     sync.Mutex
	phases []phase
}

type phase struct {
	name    string
	started time.Time
	took    time.Duration
	note    string
	open    bool
}

func NewTimer() *Timer { return &Timer{} }

// Track starts a phase and returns the function that closes it with an
// optional note. Closing twice keeps the first result.
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	t.mu.Lock()
	idx := len(t.phases)
	t.phases = append(t.phases, phase{name: name, started: time.Now(), open: true})
	t.mu.Unlock()

	return func(note string) {
		t.mu.Lock()
		defer t.mu.Unlock()
		p := &t.phases[idx]
		if !p.open {
			return
		}
		p.open = false
		p.took = time.Since(p.started)
		p.note = note
	}
}

// PhaseReport is one closed phase.
type PhaseReport struct {
	Name       string  `json:"name" yaml:"name"`
	DurationMS float64 `json:"duration_ms" yaml:"duration_ms"`
	Share      float64 `json:"share" yaml:"share"` // of TotalMS, 0..1
	Note       string  `json:"note,omitempty" yaml:"note,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms" yaml:"total_ms"`
	Phases  []PhaseReport `json:"phases" yaml:"phases"`
}

// Report lists closed phases; phases still running are left out.
func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var r Report
	var total time.Duration
	for _, p := range t.phases {
		if p.open {
			continue
		}
		total += p.took
		r.Phases = append(r.Phases, PhaseReport{Name: p.name, DurationMS: millis(p.took), Note: p.note})
	}
	r.TotalMS = millis(total)
	if r.TotalMS > 0 {
		for i := range r.Phases {
			r.Phases[i].Share = r.Phases[i].DurationMS / r.TotalMS
		}
	}
	return r
}

// Summary renders Report as an aligned table for stderr.
func (t *Timer) Summary() string {
	r := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-12s %9.3f ms %5.1f%%", p.Name, p.DurationMS, p.Share*100)
		if p.Note != "" {
			fmt.Fprintf(&b, "  // %s", p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %9.3f ms\n", "total", r.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

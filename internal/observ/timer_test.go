package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	load := tm.Track("load")
	load("3 files")
	load("second close is ignored")
	tm.Track("tokenize")("")
	tm.Track("render") // never closed

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("expected 2 closed phases, got %d", len(r.Phases))
	}
	if r.Phases[0].Name != "load" || r.Phases[0].Note != "3 files" {
		t.Fatalf("unexpected first phase %+v", r.Phases[0])
	}
	if r.TotalMS > 0 {
		var sum float64
		for _, p := range r.Phases {
			sum += p.Share
		}
		if sum < 0.99 || sum > 1.01 {
			t.Fatalf("shares add up to %v", sum)
		}
	}
	s := tm.Summary()
	for _, want := range []string{"timings:", "load", "// 3 files", "tokenize", "total"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary lacks %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "render") {
		t.Errorf("open phase must not be reported:\n%s", s)
	}
}

func TestNilAndEmptyTimer(t *testing.T) {
	var nilTimer *Timer
	nilTimer.Track("x")("y")
	if r := nilTimer.Report(); r.Phases != nil {
		t.Fatalf("nil timer reported %+v", r)
	}
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("expected zero report, got %+v", r)
	}
}

// Package prof wires the runtime profilers behind the CLI profiling flags.
package prof

import (
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"

	"plexlex/internal/errwrap"
)

// Config names the output files. Empty paths disable the profiler.
type Config struct {
	CPU   string // CPU profile, sampled for the whole run
	Mem   string // heap profile, written on Stop
	Trace string // runtime execution trace
}

// Enabled reports whether any profiler is requested.
func (c Config) Enabled() bool {
	return c.CPU != "" || c.Mem != "" || c.Trace != ""
}

// Session is a set of running profilers. Stop is safe to call more than once.
type Session struct {
	cfg       Config
	cpuFile   *os.File
	traceFile *os.File
	stopped   bool
}

// Start enables the profilers of cfg. On error everything already started
// is stopped again.
func Start(cfg Config) (*Session, error) {
	s := &Session{cfg: cfg}
	if cfg.CPU != "" {
		f, err := os.Create(cfg.CPU)
		if err != nil {
			return nil, errwrap.Wrapf(err, "failed to create cpu profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, errwrap.Wrapf(err, "failed to start cpu profile")
		}
		s.cpuFile = f
	}
	if cfg.Trace != "" {
		f, err := os.Create(cfg.Trace)
		if err != nil {
			_ = s.Stop()
			return nil, errwrap.Wrapf(err, "failed to create runtime trace")
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			_ = s.Stop()
			return nil, errwrap.Wrapf(err, "failed to start runtime trace")
		}
		s.traceFile = f
	}
	return s, nil
}

// Stop ends the trace and the CPU profile, then writes the heap profile.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true

	var errs error
	if s.traceFile != nil {
		trace.Stop()
		errs = errwrap.Append(errs, s.traceFile.Close())
		s.traceFile = nil
	}
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		errs = errwrap.Append(errs, s.cpuFile.Close())
		s.cpuFile = nil
	}
	if s.cfg.Mem != "" {
		errs = errwrap.Append(errs, writeHeap(s.cfg.Mem))
	}
	return errs
}

func writeHeap(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errwrap.Wrapf(err, "failed to create heap profile")
	}
	defer func() {
		err = errwrap.Append(err, f.Close())
	}()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return errwrap.Wrapf(err, "failed to write heap profile")
	}
	return nil
}

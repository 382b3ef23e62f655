package prof_test

import (
	"os"
	"path/filepath"
	"testing"

	"plexlex/internal/prof"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cfg := prof.Config{
		CPU: filepath.Join(dir, "cpu.pprof"),
		Mem: filepath.Join(dir, "mem.pprof"),
	}
	if !cfg.Enabled() {
		t.Fatal("config with paths must be enabled")
	}

	s, err := prof.Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}

	for _, path := range []string{cfg.CPU, cfg.Mem} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("profile %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("profile %s is empty", path)
		}
	}
}

func TestStartFailsOnBadPath(t *testing.T) {
	cfg := prof.Config{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")}
	if _, err := prof.Start(cfg); err == nil {
		t.Fatal("expected error for unwritable cpu profile path")
	}
	if (prof.Config{}).Enabled() {
		t.Fatal("empty config must be disabled")
	}
}

func TestNilSessionStop(t *testing.T) {
	var s *prof.Session
	if err := s.Stop(); err != nil {
		t.Fatalf("nil Stop: %v", err)
	}
}

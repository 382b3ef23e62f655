package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("plan.ple", []byte("Root: {}"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("plan.ple", []byte("Root: { Wait 1; }"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists := fs.GetLatest("plan.ple")
	if !exists || latestID != id2 {
		t.Fatalf("Expected latest ID %d, got %d (exists=%v)", id2, latestID, exists)
	}
	if string(fs.Get(id1).Content) != "Root: {}" {
		t.Errorf("old version must stay reachable, got %q", fs.Get(id1).Content)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.ple", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("Expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("Expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestContentKeptVerbatim(t *testing.T) {
	fs := NewFileSet()
	raw := []byte("\xEF\xBB\xBFa\r\nb\r\n")
	file := fs.Get(fs.AddVirtual("crlf.ple", raw))

	if string(file.Content) != string(raw) {
		t.Fatalf("content was rewritten: %q", file.Content)
	}
	if file.Flags&FileHasBOM == 0 {
		t.Error("Expected FileHasBOM flag")
	}
	if file.Flags&FileHasCRLF == 0 {
		t.Error("Expected FileHasCRLF flag")
	}
	if got := file.GetLine(2); got != "b" {
		t.Errorf("GetLine(2) = %q, want %q", got, "b")
	}
}

func TestLoadTranscodesUTF16(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wide.ple")
	// "Hi" as UTF-16LE with a BOM
	if err := os.WriteFile(path, []byte{0xFF, 0xFE, 'H', 0, 'i', 0}, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "Hi" {
		t.Fatalf("Expected transcoded content %q, got %q", "Hi", file.Content)
	}
	if file.Flags&FileTranscoded == 0 {
		t.Error("Expected FileTranscoded flag")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.ple")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.ple", []byte("ab\ncd\n\nx"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // the newline belongs to line 1
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{8, LineCol{4, 2}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
		if got := fs.Get(id).Position(tt.off); got != tt.want {
			t.Errorf("Position(%d) = %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestGetLineOutOfRange(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("l.ple", []byte("one\ntwo")))
	if got := file.GetLine(0); got != "" {
		t.Errorf("GetLine(0) = %q", got)
	}
	if got := file.GetLine(2); got != "two" {
		t.Errorf("GetLine(2) = %q", got)
	}
	if got := file.GetLine(3); got != "" {
		t.Errorf("GetLine(3) = %q", got)
	}
}

package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v2"

	"plexlex/internal/diag"
	"plexlex/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("Command c;\nString s = \"unterminated\n")
	fileID := fs.AddVirtual("test.ple", content)

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Span{File: fileID, Start: 22, End: 35},
		"unterminated string literal",
	).WithNote(source.Span{File: fileID, Start: 22, End: 23}, "string starts here"))
	bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: fileID}, "token cache: broken"))
	return bag, fs
}

func TestWriteDiagnosticsJSON(t *testing.T) {
	bag, fs := sampleBag(t)

	var buf bytes.Buffer
	opts := DiagOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	}
	if err := WriteDiagnostics(&buf, FormatJSON, bag, fs, PrettyOpts{}, opts); err != nil {
		t.Fatalf("WriteDiagnostics() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("Expected 2 diagnostics, got %d", output.Count)
	}
	if output.Errors != 1 || output.Warnings != 1 || output.Omitted != 0 {
		t.Fatalf("counts: %+v", output)
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "LEX1002" {
		t.Errorf("unexpected header: %s %s", d.Severity, d.Code)
	}
	if d.Location.File != "test.ple" {
		t.Errorf("Expected file=test.ple, got %s", d.Location.File)
	}
	if d.Location.StartByte != 22 || d.Location.EndByte != 35 {
		t.Errorf("unexpected bytes %d-%d", d.Location.StartByte, d.Location.EndByte)
	}
	if d.Location.Start == nil || *d.Location.Start != (source.LineCol{Line: 2, Col: 12}) {
		t.Errorf("Expected start 2:12, got %+v", d.Location.Start)
	}
	if d.Title == "" {
		t.Error("title must describe the code")
	}
	if len(d.Notes) != 1 || d.Notes[0].Message != "string starts here" {
		t.Errorf("notes: %+v", d.Notes)
	}
	if output.Diagnostics[1].Severity != "WARNING" || output.Diagnostics[1].Code != "IO4002" {
		t.Errorf("second diagnostic: %+v", output.Diagnostics[1])
	}
}

func TestBuildDiagnosticsMaxAndNoPositions(t *testing.T) {
	bag, fs := sampleBag(t)

	out := BuildDiagnostics(bag, fs, DiagOpts{Max: 1, PathMode: PathModeBasename})
	if out.Count != 1 || out.Omitted != 1 {
		t.Fatalf("Max must cut the listing, got count=%d omitted=%d", out.Count, out.Omitted)
	}
	d := out.Diagnostics[0]
	if d.Location.Start != nil || d.Notes != nil {
		t.Fatalf("positions and notes are opt-in: %+v", d)
	}

	empty := BuildDiagnostics(nil, fs, DiagOpts{})
	if empty.Count != 0 || empty.Diagnostics == nil {
		t.Fatalf("nil bag: %+v", empty)
	}
}

func TestEncodeFormats(t *testing.T) {
	bag, fs := sampleBag(t)
	out := BuildDiagnostics(bag, fs, DiagOpts{PathMode: PathModeBasename})

	var y bytes.Buffer
	if err := Encode(&y, FormatYAML, out); err != nil {
		t.Fatal(err)
	}
	var fromYAML DiagnosticsOutput
	if err := yaml.Unmarshal(y.Bytes(), &fromYAML); err != nil {
		t.Fatalf("yaml: %v\n%s", err, y.String())
	}
	if fromYAML.Count != 2 || fromYAML.Diagnostics[0].Code != "LEX1002" {
		t.Fatalf("yaml round trip: %+v", fromYAML)
	}
	if !strings.Contains(y.String(), "code: LEX1002") {
		t.Errorf("yaml keys must use snake case tags:\n%s", y.String())
	}

	var m bytes.Buffer
	if err := Encode(&m, FormatMsgpack, out); err != nil {
		t.Fatal(err)
	}
	var fromMsgpack DiagnosticsOutput
	if err := msgpack.Unmarshal(m.Bytes(), &fromMsgpack); err != nil {
		t.Fatal(err)
	}
	if fromMsgpack.Diagnostics[1].Code != "IO4002" {
		t.Fatalf("msgpack round trip: %+v", fromMsgpack)
	}

	if err := Encode(&m, FormatPretty, out); err == nil {
		t.Fatal("pretty is not a structured encoding")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPretty, "JSON": FormatJSON, " yaml ": FormatYAML, "msgpack": FormatMsgpack} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("xml must be rejected")
	}
}

package driver_test

import (
	"context"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"plexlex/internal/diag"
	"plexlex/internal/driver"
	"plexlex/internal/lexer"
	"plexlex/internal/token"
)

const samplePlan = `// plan
Command Drive(Real speed);
Root: {
  StartCondition Lookup(time) >= 10.5;
  Drive(0x1F);
}
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func openCache(t *testing.T) *driver.DiskCache {
	t.Helper()
	c, err := driver.OpenDiskCacheAt(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	return c
}

func TestTokenize_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.ple")
	writeFile(t, path, samplePlan)

	res, err := driver.Tokenize(context.Background(), path, driver.Options{MaxDiagnostics: 10})
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if res.Err() != nil {
		t.Fatalf("unexpected lexical errors: %v", res.Err())
	}
	if got := lexer.Reconstruct(res.Tokens); got != samplePlan {
		t.Fatalf("round trip mismatch:\n%q\n%q", got, samplePlan)
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != token.EOF {
		t.Fatalf("last token is %s, want EOF", last.Kind)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("bag not empty: %v", res.Bag.Items())
	}
	if res.Cached {
		t.Fatal("no cache configured, result must not be cached")
	}
}

func TestTokenize_MissingFile(t *testing.T) {
	_, err := driver.Tokenize(context.Background(), filepath.Join(t.TempDir(), "nope.ple"), driver.Options{})
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}
}

func TestTokenizeBytes_ReportsErrors(t *testing.T) {
	res := driver.TokenizeBytes(context.Background(), "<stdin>", []byte(`String s = "a\qb"; $`), driver.Options{MaxDiagnostics: 10})

	if !errors.Is(res.Err(), lexer.InvalidEscape) {
		t.Errorf("want InvalidEscape in %v", res.Err())
	}
	if !errors.Is(res.Err(), lexer.UnrecognizedCharacter) {
		t.Errorf("want UnrecognizedCharacter in %v", res.Err())
	}
	if len(res.Errors) != 2 {
		t.Fatalf("want 2 errors, got %d", len(res.Errors))
	}
	items := res.Bag.Items()
	if len(items) != 2 {
		t.Fatalf("want 2 diagnostics, got %d", len(items))
	}
	if items[0].Code != diag.LexInvalidEscape || items[1].Code != diag.LexUnrecognizedChar {
		t.Fatalf("unexpected codes: %s, %s", items[0].Code.ID(), items[1].Code.ID())
	}
}

func TestTokenizeBytes_FailFast(t *testing.T) {
	res := driver.TokenizeBytes(context.Background(), "m.ple", []byte("a $ b @ c"), driver.Options{
		Mode:           lexer.ModeFailFast,
		MaxDiagnostics: 10,
	})
	if len(res.Errors) != 1 {
		t.Fatalf("fail-fast: want 1 error, got %d", len(res.Errors))
	}
	if got := lexer.Reconstruct(res.Tokens); got != "a $" {
		t.Fatalf("fail-fast stream must stop after the invalid token, got %q", got)
	}
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.ple"), "")
	writeFile(t, filepath.Join(dir, "a.ple"), "")
	writeFile(t, filepath.Join(dir, "sub", "c.plp"), "")
	writeFile(t, filepath.Join(dir, "notes.txt"), "")

	files, err := driver.ListFiles(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.ple"),
		filepath.Join(dir, "b.ple"),
		filepath.Join(dir, "sub", "c.plp"),
	}
	if len(files) != len(want) {
		t.Fatalf("want %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("file %d: want %s, got %s", i, want[i], files[i])
		}
	}

	only, err := driver.ListFiles(dir, []string{".txt"})
	if err != nil {
		t.Fatal(err)
	}
	if len(only) != 1 || filepath.Base(only[0]) != "notes.txt" {
		t.Fatalf("extension filter: got %v", only)
	}
}

func TestTokenizeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.ple"), samplePlan)
	writeFile(t, filepath.Join(dir, "b.ple"), "Boolean ok = true;\n")
	writeFile(t, filepath.Join(dir, "c.plp"), "x = $;\n")
	writeFile(t, filepath.Join(dir, "skip.txt"), "$$$")

	fs, results, err := driver.TokenizeDir(context.Background(), dir, driver.Options{Jobs: 2, MaxDiagnostics: 10})
	if err != nil {
		t.Fatalf("tokenize dir: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("want 3 results, got %d", len(results))
	}
	for i, name := range []string{"a.ple", "b.ple", "c.plp"} {
		r := results[i]
		if filepath.Base(r.Path) != name {
			t.Fatalf("result %d: want %s, got %s", i, name, r.Path)
		}
		content := string(fs.Get(r.FileID).Content)
		if got := lexer.Reconstruct(r.Tokens); got != content {
			t.Errorf("%s: round trip mismatch", name)
		}
		for _, tok := range r.Tokens {
			if tok.Span.File != r.FileID {
				t.Errorf("%s: token %s has file %d, want %d", name, tok.Kind, tok.Span.File, r.FileID)
				break
			}
		}
	}
	if results[0].Err() != nil || results[1].Err() != nil {
		t.Fatalf("unexpected errors: %v / %v", results[0].Err(), results[1].Err())
	}
	if !errors.Is(results[2].Err(), lexer.UnrecognizedCharacter) {
		t.Fatalf("c.plp: want UnrecognizedCharacter, got %v", results[2].Err())
	}
	if !results[2].Bag.HasErrors() {
		t.Fatal("c.plp: bag must carry the error")
	}
}

func TestTokenizeDir_LoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.ple"), "Integer i;")
	if err := os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "broken.ple")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, results, err := driver.TokenizeDir(context.Background(), dir, driver.Options{MaxDiagnostics: 10})
	if err != nil {
		t.Fatalf("tokenize dir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d", len(results))
	}
	broken := results[0]
	if broken.LoadErr == nil {
		t.Fatalf("%s: want load error", broken.Path)
	}
	items := broken.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Fatalf("want one IO4001 diagnostic, got %v", items)
	}
	if results[1].Err() != nil {
		t.Fatalf("good.ple: %v", results[1].Err())
	}
}

func TestTokenizeDir_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.ple"), "Integer i;")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := driver.TokenizeDir(ctx, dir, driver.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestTokenizeDir_Empty(t *testing.T) {
	fs, results, err := driver.TokenizeDir(context.Background(), t.TempDir(), driver.Options{})
	if err != nil || len(results) != 0 || fs == nil {
		t.Fatalf("empty dir: fs=%v results=%v err=%v", fs, results, err)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []driver.Event
}

func (s *recordingSink) OnEvent(ev driver.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestTokenizeDir_Progress(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.ple"), "Integer i;")
	writeFile(t, filepath.Join(dir, "b.ple"), "$")

	sink := &recordingSink{}
	_, _, err := driver.TokenizeDir(context.Background(), dir, driver.Options{Progress: sink, Jobs: 2})
	if err != nil {
		t.Fatal(err)
	}

	final := map[string]driver.Status{}
	queued := 0
	for _, ev := range sink.events {
		if ev.File == "" {
			continue
		}
		if ev.Status == driver.StatusQueued {
			queued++
		}
		final[filepath.Base(ev.File)] = ev.Status
		if ev.Final() && ev.Stage == driver.StageLex && ev.Tokens == 0 {
			t.Errorf("%s: final event carries no token count", ev.File)
		}
	}
	if queued != 2 {
		t.Errorf("want 2 queued events, got %d", queued)
	}
	if final["a.ple"] != driver.StatusDone {
		t.Errorf("a.ple: want done, got %s", final["a.ple"])
	}
	if final["b.ple"] != driver.StatusError {
		t.Errorf("b.ple: want error, got %s", final["b.ple"])
	}
	last := sink.events[len(sink.events)-1]
	if last.File != "" || last.Status != driver.StatusDone {
		t.Errorf("last event must close the run, got %+v", last)
	}
}

func TestCache_HitRebasesAndReplays(t *testing.T) {
	dir := t.TempDir()
	const src = "String s = \"x\\q\";\n"
	writeFile(t, filepath.Join(dir, "a.ple"), src)
	writeFile(t, filepath.Join(dir, "b.ple"), src)

	opts := driver.Options{Jobs: 1, MaxDiagnostics: 10, Cache: openCache(t)}
	fs, results, err := driver.TokenizeDir(context.Background(), dir, opts)
	if err != nil {
		t.Fatal(err)
	}
	first, second := results[0], results[1]
	if first.Cached {
		t.Fatal("first file must miss the cache")
	}
	if !second.Cached {
		t.Fatal("identical content must hit the cache")
	}
	if first.FileID == second.FileID {
		t.Fatal("files must have distinct IDs")
	}
	if got := lexer.Reconstruct(second.Tokens); got != string(fs.Get(second.FileID).Content) {
		t.Fatalf("cached round trip mismatch: %q", got)
	}
	for _, tok := range second.Tokens {
		if tok.Span.File != second.FileID {
			t.Fatalf("cached token %s not rebased: file %d", tok.Kind, tok.Span.File)
		}
	}
	if len(second.Errors) != 1 || second.Errors[0].Kind != lexer.InvalidEscape {
		t.Fatalf("cached errors: %v", second.Errors)
	}
	if second.Errors[0].Span.File != second.FileID {
		t.Fatal("cached error not rebased")
	}
	items := second.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.LexInvalidEscape {
		t.Fatalf("cached diagnostics not replayed: %v", items)
	}
	if items[0].Primary.File != second.FileID {
		t.Fatal("replayed diagnostic not rebased")
	}
	if len(items[0].Notes) != len(first.Bag.Items()[0].Notes) {
		t.Fatal("replayed diagnostic lost its notes")
	}
}

func TestCache_KeyDependsOnMode(t *testing.T) {
	content := []byte("Integer i;")
	if driver.KeyFor(content, lexer.ModeCollectAll) == driver.KeyFor(content, lexer.ModeFailFast) {
		t.Fatal("modes must not share cache entries")
	}
	if driver.KeyFor(content, lexer.ModeCollectAll) != driver.KeyFor([]byte("Integer i;"), lexer.ModeCollectAll) {
		t.Fatal("key must be deterministic")
	}
}

func TestCache_CorruptEntry(t *testing.T) {
	cache := openCache(t)
	content := []byte("Integer i;")
	key := driver.KeyFor(content, lexer.ModeCollectAll)
	writeFile(t, filepath.Join(cache.Dir(), "tokens", hex.EncodeToString(key[:])+".mp"), "\xc1")

	res := driver.TokenizeBytes(context.Background(), "m.ple", content, driver.Options{Cache: cache, MaxDiagnostics: 10})
	if res.Cached {
		t.Fatal("corrupt entry must not count as a hit")
	}
	if res.Err() != nil {
		t.Fatalf("lexing must still succeed: %v", res.Err())
	}
	items := res.Bag.Items()
	if len(items) == 0 || items[0].Code != diag.IOCacheError || items[0].Severity != diag.SevWarning {
		t.Fatalf("want IO4002 warning, got %v", items)
	}

	// the entry was rewritten by the miss
	again := driver.TokenizeBytes(context.Background(), "m.ple", content, driver.Options{Cache: cache, MaxDiagnostics: 10})
	if !again.Cached || again.Bag.Len() != 0 {
		t.Fatalf("second run: cached=%v diags=%v", again.Cached, again.Bag.Items())
	}
}

func TestCache_DropAll(t *testing.T) {
	cache := openCache(t)
	content := []byte("Boolean b;")
	opts := driver.Options{Cache: cache}
	driver.TokenizeBytes(context.Background(), "m.ple", content, opts)
	if !driver.TokenizeBytes(context.Background(), "m.ple", content, opts).Cached {
		t.Fatal("expected hit before DropAll")
	}
	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	if driver.TokenizeBytes(context.Background(), "m.ple", content, opts).Cached {
		t.Fatal("expected miss after DropAll")
	}
}

func TestCache_NilIsDisabled(t *testing.T) {
	var c *driver.DiskCache
	var payload driver.DiskPayload
	hit, err := c.Get(driver.Digest{}, &payload)
	if hit || err != nil {
		t.Fatalf("nil cache: hit=%v err=%v", hit, err)
	}
	if err := c.Put(driver.Digest{}, &payload); err != nil {
		t.Fatal(err)
	}
}

package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"plexlex/internal/diag"
	"plexlex/internal/errwrap"
	"plexlex/internal/lexer"
	"plexlex/internal/source"
	"plexlex/internal/token"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest is a cache key.
type Digest [32]byte

// DiskCache keeps tokenized files on disk keyed by content, keyword table
// version and lexer mode. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached result of tokenizing one file. Spans carry the
// FileID of the run that produced them and are rebased on load.
type DiskPayload struct {
	Schema      uint16            `msgpack:"schema"`
	Tokens      []token.Token     `msgpack:"tokens"`
	Errors      []cachedError     `msgpack:"errors,omitempty"`
	Diagnostics []diag.Diagnostic `msgpack:"diags,omitempty"`
}

type cachedError struct {
	Kind   uint8          `msgpack:"k"`
	Span   source.Span    `msgpack:"s"`
	Pos    source.LineCol `msgpack:"p"`
	Lexeme string         `msgpack:"l"`
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it if needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errwrap.Wrapf(err, "create cache dir")
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// KeyFor derives the cache key for content lexed in mode.
func KeyFor(content []byte, mode lexer.Mode) Digest {
	h := sha256.New()
	_, _ = h.Write(content)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(token.KeywordTableVersion))
	_, _ = h.Write([]byte{0, byte(mode)})
	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	_, _ = h.Write(schema[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "tokens", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return errwrap.Wrapf(err, "encode %s", filepath.Base(p))
	}
	if err = f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload from
// another schema version is reported as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	// #nosec G304 -- path is derived from the cache dir and a hex key
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, errwrap.Wrapf(err, "decode %s", filepath.Base(p))
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func toDiskPayload(toks []token.Token, errs []*lexer.Error, diags []diag.Diagnostic) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Tokens:      toks,
		Diagnostics: diags,
	}
	for _, e := range errs {
		payload.Errors = append(payload.Errors, cachedError{
			Kind:   uint8(e.Kind),
			Span:   e.Span,
			Pos:    e.Pos,
			Lexeme: e.Lexeme,
		})
	}
	return payload
}

// rebase moves every span of the payload onto file id.
func (payload *DiskPayload) rebase(id source.FileID) ([]token.Token, []*lexer.Error, []diag.Diagnostic) {
	toks := make([]token.Token, len(payload.Tokens))
	for i, tok := range payload.Tokens {
		tok.Span.File = id
		if len(tok.Leading) > 0 {
			leading := make([]token.Trivia, len(tok.Leading))
			for j, tv := range tok.Leading {
				tv.Span.File = id
				leading[j] = tv
			}
			tok.Leading = leading
		}
		toks[i] = tok
	}

	errs := make([]*lexer.Error, 0, len(payload.Errors))
	for _, ce := range payload.Errors {
		sp := ce.Span
		sp.File = id
		errs = append(errs, &lexer.Error{
			Kind:   lexer.ErrorKind(ce.Kind),
			Span:   sp,
			Pos:    ce.Pos,
			Lexeme: ce.Lexeme,
		})
	}

	diags := make([]diag.Diagnostic, 0, len(payload.Diagnostics))
	for _, d := range payload.Diagnostics {
		d.Primary.File = id
		if len(d.Notes) > 0 {
			notes := make([]diag.Note, len(d.Notes))
			for j, n := range d.Notes {
				n.Span.File = id
				notes[j] = n
			}
			d.Notes = notes
		}
		diags = append(diags, d)
	}
	return toks, errs, diags
}

package driver

import (
	"context"
	"math"
	"strconv"
	"time"

	"plexlex/internal/diag"
	"plexlex/internal/errwrap"
	"plexlex/internal/lexer"
	"plexlex/internal/metrics"
	"plexlex/internal/source"
	"plexlex/internal/token"
	"plexlex/internal/trace"
)

// DefaultExtensions are the plan file suffixes picked up by TokenizeDir.
var DefaultExtensions = []string{".ple", ".plp"}

// Options configures Tokenize and TokenizeDir. The zero value lexes in
// collect-all mode without cache, metrics or progress reporting.
type Options struct {
	Mode           lexer.Mode
	MaxDiagnostics int      // per file; <= 0 means no limit
	Extensions     []string // TokenizeDir only; empty means DefaultExtensions
	Jobs           int      // TokenizeDir only; <= 0 means GOMAXPROCS
	Cache          *DiskCache
	Metrics        *metrics.Metrics
	Progress       ProgressSink
}

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // raw stream with hidden tokens, terminated by EOF
	Bag     *diag.Bag
	Errors  []*lexer.Error
	Cached  bool
}

func newBag(limit int) *diag.Bag {
	if limit <= 0 {
		limit = math.MaxUint16
	}
	return diag.NewBag(limit)
}

// Err aggregates the lexical errors of the file.
func (r *TokenizeResult) Err() error {
	return joinErrors(r.Errors)
}

// Tokenize loads path and tokenizes it.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, errwrap.Wrapf(err, "load %s", path)
	}
	return tokenizeInSet(ctx, fs, fileID, &opts), nil
}

// TokenizeBytes tokenizes in-memory content registered as a virtual file.
func TokenizeBytes(ctx context.Context, name string, content []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return tokenizeInSet(ctx, fs, fileID, &opts)
}

func tokenizeInSet(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts *Options) *TokenizeResult {
	file := fs.Get(fileID)
	bag := newBag(opts.MaxDiagnostics)
	out := lexFile(ctx, file, bag, opts)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  out.tokens,
		Bag:     bag,
		Errors:  out.errs,
		Cached:  out.cached,
	}
}

type fileOutcome struct {
	tokens []token.Token
	errs   []*lexer.Error
	cached bool
}

// lexFile runs one lexer over file, going through the token cache when
// one is configured. Diagnostics land in bag either way.
func lexFile(ctx context.Context, file *source.File, bag *diag.Bag, opts *Options) fileOutcome {
	sp, ctx := trace.StartSpan(ctx, trace.ScopeFile, "file:"+file.Path)
	tracer := trace.FromContext(ctx)
	start := time.Now()
	reporter := (&lexer.ReporterAdapter{Bag: bag}).Reporter()

	var key Digest
	if opts.Cache != nil {
		emit(opts.Progress, Event{File: file.Path, Stage: StageCache, Status: StatusWorking})
		key = KeyFor(file.Content, opts.Mode)
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			reportCacheError(bag, file, err)
			trace.Error(tracer, err, sp.ID())
		}
		if hit {
			trace.Point(tracer, trace.ScopeToken, "cache", "hit", sp.ID())
			toks, errs, diags := payload.rebase(file.ID)
			for _, d := range diags {
				reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
			}
			opts.Metrics.CacheHit()
			out := fileOutcome{tokens: toks, errs: errs, cached: true}
			finishFile(sp, file, out, time.Since(start), opts)
			return out
		}
		trace.Point(tracer, trace.ScopeToken, "cache", "miss", sp.ID())
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageLex, Status: StatusWorking})
	rec := &recordingReporter{next: reporter}
	lx := lexer.New(file, lexer.Options{Reporter: rec, Mode: opts.Mode})
	toks := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	errs := lx.Errors()
	for _, e := range errs {
		trace.Point(tracer, trace.ScopeToken, "lex-error", e.Error(), sp.ID())
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, toDiskPayload(toks, errs, rec.diags)); err != nil {
			reportCacheError(bag, file, err)
			trace.Error(tracer, err, sp.ID())
		}
	}

	out := fileOutcome{tokens: toks, errs: errs}
	finishFile(sp, file, out, time.Since(start), opts)
	return out
}

func finishFile(sp *trace.Span, file *source.File, out fileOutcome, dur time.Duration, opts *Options) {
	opts.Metrics.ObserveFile(out.tokens, out.errs, dur)
	sp.WithExtra("tokens", strconv.Itoa(len(out.tokens))).
		WithExtra("errors", strconv.Itoa(len(out.errs))).
		WithExtra("cached", strconv.FormatBool(out.cached))
	status := StatusDone
	detail := "ok"
	var err error
	if len(out.errs) > 0 {
		status = StatusError
		detail = "lexical errors"
		err = joinErrors(out.errs)
	}
	sp.End(detail)
	emit(opts.Progress, Event{
		File: file.Path, Stage: StageLex, Status: status, Err: err,
		Elapsed: dur, Tokens: len(out.tokens), Cached: out.cached,
	})
}

func reportCacheError(bag *diag.Bag, file *source.File, err error) {
	diag.ReportWarning(diag.BagReporter{Bag: bag}, diag.IOCacheError,
		source.Span{File: file.ID}, "token cache: "+err.Error()).Emit()
}

func joinErrors(errs []*lexer.Error) error {
	var err error
	for _, e := range errs {
		err = errwrap.Append(err, e)
	}
	return err
}

// recordingReporter keeps a copy of every diagnostic so that a cache hit
// can replay them.
type recordingReporter struct {
	next  diag.Reporter
	diags []diag.Diagnostic
}

func (r *recordingReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diags = append(r.diags, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"sort"
	"strconv"

	"golang.org/x/sync/errgroup"

	"plexlex/internal/diag"
	"plexlex/internal/errwrap"
	"plexlex/internal/lexer"
	"plexlex/internal/source"
	"plexlex/internal/token"
	"plexlex/internal/trace"
)

// TokenizeDirResult is the outcome for one file of a directory run.
type TokenizeDirResult struct {
	Path    string        // path as walked, relative to the working dir when dir was
	FileID  source.FileID // ID in the shared FileSet; an empty placeholder when LoadErr != nil
	Tokens  []token.Token // raw stream terminated by EOF
	Bag     *diag.Bag
	Errors  []*lexer.Error
	Cached  bool
	LoadErr error
}

// Err aggregates the load error and the lexical errors of the file.
func (r *TokenizeDirResult) Err() error {
	if r.LoadErr != nil {
		return r.LoadErr
	}
	return joinErrors(r.Errors)
}

// ListFiles returns the sorted list of files under dir whose extension is
// one of exts (DefaultExtensions when empty).
func ListFiles(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errwrap.Wrapf(err, "walk %s", dir)
	}

	// deterministic order
	sort.Strings(files)
	return files, nil
}

// TokenizeDir tokenizes every matching file under dir in parallel, one
// lexer per file. Results are in ListFiles order. Load failures become
// IO4001 diagnostics in the file's bag; the returned error is only set
// when the walk fails or ctx is cancelled.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	files, err := ListFiles(dir, opts.Extensions)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet is not safe for concurrent Add, so everything is loaded up front.
	loadSpan, _ := trace.StartSpan(ctx, trace.ScopePhase, "load")
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			// an empty placeholder gives the diagnostic a path to point at
			loadErrors[path] = err
			fileID = fileSet.AddVirtual(path, nil)
		}
		fileIDs[path] = fileID
	}
	loadSpan.WithExtra("files", strconv.Itoa(len(files))).
		WithExtra("failed", strconv.Itoa(len(loadErrors))).
		End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tokSpan, tokCtx := trace.StartSpan(ctx, trace.ScopePhase, "tokenize")
	emit(opts.Progress, Event{Stage: StageLex, Status: StatusWorking})

	// indices are unique per goroutine, no mutex needed
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(tokCtx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := newBag(opts.MaxDiagnostics)

			fileID := fileIDs[path]
			if loadErr, failed := loadErrors[path]; failed {
				results[i] = TokenizeDirResult{
					Path:    path,
					FileID:  fileID,
					Bag:     bag,
					LoadErr: loadErr,
				}
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError,
					source.Span{File: fileID}, "failed to load file: "+loadErr.Error()).Emit()
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			out := lexFile(gctx, fileSet.Get(fileID), bag, &opts)
			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: fileID,
				Tokens: out.tokens,
				Bag:    bag,
				Errors: out.errs,
				Cached: out.cached,
			}
			return nil
		})
	}

	err = g.Wait()
	status := StatusDone
	if err != nil {
		status = StatusError
		trace.Error(trace.FromContext(ctx), err, tokSpan.ID())
	}
	tokSpan.End(string(status))
	emit(opts.Progress, Event{Stage: StageLex, Status: status, Err: err})
	if err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

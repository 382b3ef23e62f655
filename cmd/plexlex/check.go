package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plexlex/internal/diag"
	"plexlex/internal/diagfmt"
	"plexlex/internal/driver"
	"plexlex/internal/errwrap"
	"plexlex/internal/lexer"
	"plexlex/internal/source"
	"plexlex/internal/testkit"
	"plexlex/internal/token"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file|dir>",
	Short: "Check plan files for lexical errors",
	Long: `Check lexes every plan file, prints its diagnostics and verifies that the
token stream reproduces the source exactly. Exits with status 1 when a file
has errors.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("fail-fast", false, "stop lexing a file at its first error")
	checkCmd.Flags().Int("jobs", 0, "parallel files when checking a directory (0 = GOMAXPROCS)")
	checkCmd.Flags().Bool("short", false, "print one line per diagnostic without source snippets")
	checkCmd.Flags().String("diag-format", "pretty", "diagnostics format (pretty|json|yaml|msgpack); structured formats go to stdout")
}

// checkedFile is the input of the stream checks for one file.
type checkedFile struct {
	path   string
	file   *source.File
	tokens []token.Token
}

func runCheck(cmd *cobra.Command, args []string) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	st, err := resolveSettings(cmd, s.cfg)
	if err != nil {
		return err
	}
	// the check always lexes afresh
	st.opts.Cache = nil
	st.opts.Metrics = s.metrics

	short, _ := cmd.Flags().GetBool("short")
	formatName, _ := cmd.Flags().GetString("diag-format")
	diagFormat, err := diagfmt.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if short && diagFormat != diagfmt.FormatPretty {
		return fmt.Errorf("--short cannot be combined with --diag-format %s", diagFormat)
	}

	fs, bag, files, err := collectChecked(cmd.Context(), s, st, args[0])
	if err != nil {
		return err
	}
	switch {
	case diagFormat != diagfmt.FormatPretty:
		bag.Sort()
		opts := diagfmt.DiagOpts{IncludePositions: true, IncludeNotes: true, PathMode: diagfmt.PathModeRelative}
		if err := diagfmt.WriteDiagnostics(cmd.OutOrStdout(), diagFormat, bag, fs, s.prettyOpts(), opts); err != nil {
			return err
		}
	case short:
		if out := diag.FormatShort(bag.Items(), fs, true); out != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), out)
		}
	default:
		s.printDiagnostics(bag, fs)
	}

	complete := st.opts.Mode == lexer.ModeCollectAll
	violations := 0
	for _, f := range files {
		if verr := checkStream(f, complete); verr != nil {
			violations++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: token stream check failed: %v\n", f.path, verr)
		}
	}

	errorsCount := bag.CountBySeverity(diag.SevError)
	s.notef("checked %d files: %d errors, %d warnings, %d stream violations",
		len(files), errorsCount, bag.CountBySeverity(diag.SevWarning), violations)
	if errorsCount > 0 || violations > 0 {
		return exitError{code: 1}
	}
	return nil
}

func collectChecked(ctx context.Context, s *session, st runSettings, target string) (*source.FileSet, *diag.Bag, []checkedFile, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("check failed: %w", err)
	}

	done := s.track("check")
	if !info.IsDir() {
		res, err := driver.Tokenize(ctx, target, st.opts)
		if err != nil {
			done("failed")
			return nil, nil, nil, fmt.Errorf("check failed: %w", err)
		}
		done(target)
		return res.FileSet, res.Bag, []checkedFile{{path: target, file: res.File, tokens: res.Tokens}}, nil
	}

	fs, results, err := driver.TokenizeDir(ctx, target, st.opts)
	if err != nil {
		done("failed")
		return nil, nil, nil, fmt.Errorf("check failed: %w", err)
	}
	done(fmt.Sprintf("%d files", len(results)))

	bag := diag.NewBag(st.opts.MaxDiagnostics)
	files := make([]checkedFile, 0, len(results))
	for i := range results {
		r := &results[i]
		bag.Merge(r.Bag)
		if r.LoadErr != nil {
			continue
		}
		files = append(files, checkedFile{path: r.Path, file: fs.Get(r.FileID), tokens: r.Tokens})
	}
	return fs, bag, files, nil
}

// checkStream verifies the span invariants of a raw stream and, for
// streams that cover the whole file, the byte-exact round trip.
func checkStream(f checkedFile, complete bool) error {
	var errs error
	if err := testkit.CheckSpanInvariants(f.tokens, f.file, complete); err != nil {
		errs = errwrap.Append(errs, err)
	}
	if complete {
		if err := testkit.CheckRoundTrip(f.tokens, f.file); err != nil {
			errs = errwrap.Append(errs, err)
		}
	}
	return errs
}

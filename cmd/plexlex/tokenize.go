package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"plexlex/internal/diag"
	"plexlex/internal/diagfmt"
	"plexlex/internal/driver"
	"plexlex/internal/source"
	"plexlex/internal/token"
)

const stdinName = "<stdin>"

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file|dir|->",
	Short: "Tokenize a PLEXIL plan file or directory",
	Long: `Tokenize breaks a plan into tokens. A directory is walked for plan files
which are tokenized in parallel; "-" reads the plan from standard input.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
	tokenizeCmd.Flags().Bool("hidden", false, "list whitespace and comment tokens instead of attaching them as trivia")
	tokenizeCmd.Flags().Bool("fail-fast", false, "stop lexing a file at its first error")
	tokenizeCmd.Flags().Int("jobs", 0, "parallel files when tokenizing a directory (0 = GOMAXPROCS)")
	tokenizeCmd.Flags().Bool("no-cache", false, "bypass the on-disk token cache")
	tokenizeCmd.Flags().Bool("clear-cache", false, "empty the on-disk token cache before tokenizing")
	tokenizeCmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
}

func runTokenize(cmd *cobra.Command, args []string) (err error) {
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
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	ui, err := readSwitch("ui", uiFlag)
	if err != nil {
		return err
	}

	st.opts.Metrics = s.metrics
	if st.cache {
		wipe, _ := cmd.Flags().GetBool("clear-cache")
		st.opts.Cache = openCache(s, wipe)
	}

	ctx := cmd.Context()
	target := args[0]
	if target == "-" {
		return tokenizeStdin(ctx, s, st)
	}
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if info.IsDir() {
		return tokenizeDir(ctx, s, st, target, ui)
	}
	return tokenizeFile(ctx, s, st, target)
}

// openCache opens the user token cache, emptied first when wipe is set.
// Failing to open it only disables caching for this run.
func openCache(s *session, wipe bool) *driver.DiskCache {
	c, err := driver.OpenDiskCache("plexlex")
	if err != nil {
		s.notef("token cache disabled: %v", err)
		return nil
	}
	if wipe {
		if err := c.DropAll(); err != nil {
			s.notef("token cache not cleared: %v", err)
		}
	}
	return c
}

func tokenizeStdin(ctx context.Context, s *session, st runSettings) error {
	content, err := io.ReadAll(s.cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read standard input: %w", err)
	}
	done := s.track("tokenize")
	res := driver.TokenizeBytes(ctx, stdinName, content, st.opts)
	done(stdinName)
	return finishSingle(s, st, res)
}

func tokenizeFile(ctx context.Context, s *session, st runSettings, path string) error {
	done := s.track("tokenize")
	res, err := driver.Tokenize(ctx, path, st.opts)
	if err != nil {
		done("failed")
		return fmt.Errorf("tokenization failed: %w", err)
	}
	note := path
	if res.Cached {
		note += " (cached)"
	}
	done(note)
	return finishSingle(s, st, res)
}

func finishSingle(s *session, st runSettings, res *driver.TokenizeResult) error {
	s.printDiagnostics(res.Bag, res.FileSet)

	done := s.track("render")
	err := diagfmt.FormatTokens(s.cmd.OutOrStdout(), st.format, selectTokens(res.Tokens, st.hidden), res.FileSet, diagfmt.TokenOpts{Color: s.colorOut})
	done("")
	if err != nil {
		return err
	}
	if res.Bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

func tokenizeDir(ctx context.Context, s *session, st runSettings, dir string, mode switchMode) error {
	var (
		fs      *source.FileSet
		results []driver.TokenizeDirResult
		err     error
	)
	done := s.track("tokenize")
	if shouldUseTUI(mode) {
		files, listErr := driver.ListFiles(dir, st.opts.Extensions)
		if listErr != nil {
			done("failed")
			return fmt.Errorf("tokenization failed: %w", listErr)
		}
		fs, results, err = runTokenizeDirWithUI(ctx, "tokenizing "+dir, dir, files, st.opts)
	} else {
		fs, results, err = driver.TokenizeDir(ctx, dir, st.opts)
	}
	if err != nil {
		done("failed")
		return fmt.Errorf("tokenization failed: %w", err)
	}
	done(fmt.Sprintf("%d files", len(results)))

	bag := diag.NewBag(st.opts.MaxDiagnostics)
	listings := make([]diagfmt.Listing, 0, len(results))
	var tokens, cached int
	for i := range results {
		r := &results[i]
		bag.Merge(r.Bag)
		if r.Cached {
			cached++
		}
		if r.LoadErr != nil {
			continue
		}
		tokens += len(r.Tokens)
		listings = append(listings, diagfmt.Listing{Path: r.Path, Tokens: selectTokens(r.Tokens, st.hidden)})
	}
	s.printDiagnostics(bag, fs)

	renderDone := s.track("render")
	err = diagfmt.FormatListings(s.cmd.OutOrStdout(), st.format, listings, fs, diagfmt.TokenOpts{Color: s.colorOut})
	renderDone("")
	if err != nil {
		return err
	}
	s.notef("%d files, %d tokens, %d from cache, %d errors", len(results), tokens, cached, bag.CountBySeverity(diag.SevError))
	if bag.HasErrors() {
		return exitError{code: 1}
	}
	return nil
}

// selectTokens picks the listing form: the raw stream with hidden tokens,
// or the significant stream carrying them as leading trivia.
func selectTokens(raw []token.Token, hidden bool) []token.Token {
	if hidden {
		return raw
	}
	return token.Fold(raw)
}

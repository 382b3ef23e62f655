package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"plexlex/internal/config"
	"plexlex/internal/diag"
	"plexlex/internal/diagfmt"
	"plexlex/internal/errwrap"
	"plexlex/internal/metrics"
	"plexlex/internal/observ"
	"plexlex/internal/prof"
	"plexlex/internal/source"
)

// session holds the state shared by the subcommands for one invocation:
// the resolved configuration, color decisions, timings and metrics.
type session struct {
	cmd        *cobra.Command
	cfg        config.Config
	cfgPath    string
	colorOut   bool
	colorErr   bool
	quiet      bool
	timer      *observ.Timer // nil without --timings
	metrics    *metrics.Metrics
	metricsOut string

	traceCleanup func()
	profiling    *prof.Session
}

// openSession reads the global flags, loads the configuration and starts
// tracing. A broken configuration is reported as PRJ5001 and aborts with
// exit status 2.
func openSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := readSwitch("color", colorFlag)
	if err != nil {
		return nil, err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	cfgFlag, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	metricsOut, err := flags.GetString("metrics-out")
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics-out flag: %w", err)
	}

	s := &session{
		cmd:        cmd,
		colorOut:   useColor(mode, os.Stdout),
		colorErr:   useColor(mode, os.Stderr),
		quiet:      quiet,
		metricsOut: metricsOut,
	}
	// version.Colorize and anything else built on the global switch
	color.NoColor = !s.colorOut
	if showTimings {
		s.timer = observ.NewTimer()
	}
	if metricsOut != "" {
		s.metrics = metrics.New()
	}

	done := s.track("config")
	s.cfg, s.cfgPath, err = config.Resolve(cfgFlag, ".")
	if err != nil {
		done("failed")
		s.reportConfigError(err)
		return nil, exitError{code: 2}
	}
	done(s.cfgPath)

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return nil, err
	}
	s.traceCleanup = cleanup

	s.profiling, err = setupProfiling(cmd)
	if err != nil {
		s.traceCleanup()
		return nil, err
	}
	return s, nil
}

func (s *session) reportConfigError(err error) {
	bag := diag.NewBag(1)
	bag.Add(diag.NewError(diag.ProjConfigError, source.Span{}, err.Error()))
	diagfmt.Pretty(s.cmd.ErrOrStderr(), bag, nil, diagfmt.PrettyOpts{Color: s.colorErr})
}

// track starts a timing phase; it is a no-op without --timings.
func (s *session) track(name string) func(note string) {
	return s.timer.Track(name)
}

// close stops the profilers, writes metrics and timings and stops tracing.
func (s *session) close() error {
	err := s.profiling.Stop()
	if s.metricsOut != "" {
		err = errwrap.Append(err, s.metrics.WriteTextfile(s.metricsOut))
	}
	if s.timer != nil && !s.quiet {
		io.WriteString(s.cmd.ErrOrStderr(), s.timer.Summary())
	}
	if s.traceCleanup != nil {
		s.traceCleanup()
	}
	return err
}

// prettyOpts returns diagnostic rendering options for stderr.
func (s *session) prettyOpts() diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.colorErr,
		Context:   2,
		PathMode:  diagfmt.PathModeAuto,
		ShowNotes: true,
	}
}

// printDiagnostics writes bag to stderr. Warnings are dropped in quiet mode.
func (s *session) printDiagnostics(bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len()+bag.Dropped() == 0 {
		return
	}
	if s.quiet && !bag.HasErrors() {
		return
	}
	bag.Sort()
	diagfmt.Pretty(s.cmd.ErrOrStderr(), bag, fs, s.prettyOpts())
	if n := bag.Dropped(); n > 0 {
		s.notef("%d more diagnostics not shown (raise --max-diagnostics)", n)
	}
}

// notef prints an informational line to stderr unless --quiet is set.
func (s *session) notef(format string, args ...any) {
	if s.quiet {
		return
	}
	fmt.Fprintf(s.cmd.ErrOrStderr(), format+"\n", args...)
}

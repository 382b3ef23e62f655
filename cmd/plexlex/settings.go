package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"plexlex/internal/config"
	"plexlex/internal/diagfmt"
	"plexlex/internal/driver"
	"plexlex/internal/lexer"
)

// flagOverrides holds the command line values that were set explicitly.
// Unset fields leave the configuration untouched.
type flagOverrides struct {
	format         *string
	hidden         *bool
	failFast       *bool
	jobs           *int
	noCache        bool
	maxDiagnostics *int
}

// readOverrides collects the flags of cmd that the user changed. Flags a
// command does not define are ignored.
func readOverrides(cmd *cobra.Command) (flagOverrides, error) {
	var o flagOverrides
	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return o, fmt.Errorf("failed to get format flag: %w", err)
		}
		o.format = &v
	}
	if changed("hidden") {
		v, err := flags.GetBool("hidden")
		if err != nil {
			return o, fmt.Errorf("failed to get hidden flag: %w", err)
		}
		o.hidden = &v
	}
	if changed("fail-fast") {
		v, err := flags.GetBool("fail-fast")
		if err != nil {
			return o, fmt.Errorf("failed to get fail-fast flag: %w", err)
		}
		o.failFast = &v
	}
	if changed("jobs") {
		v, err := flags.GetInt("jobs")
		if err != nil {
			return o, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		o.jobs = &v
	}
	if changed("no-cache") {
		v, err := flags.GetBool("no-cache")
		if err != nil {
			return o, fmt.Errorf("failed to get no-cache flag: %w", err)
		}
		o.noCache = v
	}
	if changed("max-diagnostics") {
		v, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return o, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		o.maxDiagnostics = &v
	}
	return o, nil
}

// apply layers the overrides on top of cfg and validates the result.
func (o flagOverrides) apply(cfg config.Config) (config.Config, error) {
	if o.format != nil {
		cfg.Tokenize.Format = *o.format
	}
	if o.hidden != nil {
		cfg.Tokenize.Hidden = *o.hidden
	}
	if o.failFast != nil {
		if *o.failFast {
			cfg.Lexer.Mode = lexer.ModeFailFast.String()
		} else {
			cfg.Lexer.Mode = lexer.ModeCollectAll.String()
		}
	}
	if o.jobs != nil {
		cfg.Tokenize.Jobs = *o.jobs
	}
	if o.noCache {
		cfg.Tokenize.Cache = false
	}
	if o.maxDiagnostics != nil {
		cfg.Lexer.MaxDiagnostics = *o.maxDiagnostics
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runSettings is the effective configuration of a tokenize or check run.
type runSettings struct {
	format diagfmt.Format
	hidden bool
	opts   driver.Options
	cache  bool
}

func settingsFrom(cfg config.Config) (runSettings, error) {
	format, err := diagfmt.ParseFormat(cfg.Tokenize.Format)
	if err != nil {
		return runSettings{}, err
	}
	return runSettings{
		format: format,
		hidden: cfg.Tokenize.Hidden,
		cache:  cfg.Tokenize.Cache,
		opts: driver.Options{
			Mode:           cfg.LexerMode(),
			MaxDiagnostics: cfg.Lexer.MaxDiagnostics,
			Extensions:     cfg.Tokenize.Extensions,
			Jobs:           cfg.Tokenize.Jobs,
		},
	}, nil
}

// resolveSettings merges cfg with the flags of cmd.
func resolveSettings(cmd *cobra.Command, cfg config.Config) (runSettings, error) {
	o, err := readOverrides(cmd)
	if err != nil {
		return runSettings{}, err
	}
	merged, err := o.apply(cfg)
	if err != nil {
		return runSettings{}, err
	}
	return settingsFrom(merged)
}

// Package config loads plexlex.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"plexlex/internal/errwrap"
	"plexlex/internal/lexer"
)

// FileName is the name looked up from the working directory upward.
const FileName = "plexlex.toml"

type Config struct {
	Lexer    LexerConfig    `toml:"lexer"`
	Tokenize TokenizeConfig `toml:"tokenize"`
}

type LexerConfig struct {
	Mode           string `toml:"mode"`            // collect | failfast
	MaxDiagnostics int    `toml:"max_diagnostics"` // limit per file
}

type TokenizeConfig struct {
	Format     string   `toml:"format"`     // pretty | json | yaml | msgpack
	Hidden     bool     `toml:"hidden"`     // include hidden tokens in output
	Extensions []string `toml:"extensions"` // files picked up from directories
	Jobs       int      `toml:"jobs"`       // 0 = GOMAXPROCS
	Cache      bool     `toml:"cache"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Lexer: LexerConfig{
			Mode:           lexer.ModeCollectAll.String(),
			MaxDiagnostics: 100,
		},
		Tokenize: TokenizeConfig{
			Format:     "pretty",
			Extensions: []string{".ple", ".plp"},
			Cache:      true,
		},
	}
}

// Formats lists the accepted tokenize output formats.
var Formats = []string{"pretty", "json", "yaml", "msgpack"}

// LexerMode parses Lexer.Mode.
func (c Config) LexerMode() lexer.Mode {
	m, _ := lexer.ParseMode(c.Lexer.Mode)
	return m
}

// Validate reports the first invalid value.
func (c Config) Validate() error {
	if _, ok := lexer.ParseMode(c.Lexer.Mode); !ok {
		return fmt.Errorf("[lexer].mode: unknown mode %q (expected collect|failfast)", c.Lexer.Mode)
	}
	if c.Lexer.MaxDiagnostics < 0 {
		return fmt.Errorf("[lexer].max_diagnostics must not be negative")
	}
	if !validFormat(c.Tokenize.Format) {
		return fmt.Errorf("[tokenize].format: unknown format %q (expected %s)", c.Tokenize.Format, strings.Join(Formats, "|"))
	}
	if c.Tokenize.Jobs < 0 {
		return fmt.Errorf("[tokenize].jobs must not be negative")
	}
	for _, ext := range c.Tokenize.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("[tokenize].extensions: %q must start with '.'", ext)
		}
	}
	return nil
}

func validFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, errwrap.Wrapf(err, "failed to resolve start directory")
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, errwrap.Wrapf(err, "failed to stat %q", candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults; keys absent from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errwrap.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errwrap.Wrapf(err, "%s", path)
	}
	return cfg, nil
}

// Resolve loads explicit when set, otherwise the nearest plexlex.toml above
// startDir, otherwise the defaults. The returned path is empty for defaults.
func Resolve(explicit, startDir string) (Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"plexlex/internal/diagfmt"
	"plexlex/internal/token"
	"plexlex/internal/version"
)

// versionOptions selects which build fields are printed.
type versionOptions struct {
	format              diagfmt.Format
	hash, message, date bool
	color               bool
}

type versionPayload struct {
	Tool         string `json:"tool" yaml:"tool" msgpack:"tool"`
	Version      string `json:"version" yaml:"version" msgpack:"version"`
	KeywordTable string `json:"keyword_table" yaml:"keyword_table" msgpack:"keyword_table"`
	GitCommit    string `json:"git_commit,omitempty" yaml:"git_commit,omitempty" msgpack:"git_commit,omitempty"`
	GitMessage   string `json:"git_message,omitempty" yaml:"git_message,omitempty" msgpack:"git_message,omitempty"`
	BuildDate    string `json:"build_date,omitempty" yaml:"build_date,omitempty" msgpack:"build_date,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show plexlex build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	f := versionCmd.Flags()
	f.Bool("hash", false, "include git commit hash")
	f.Bool("message", false, "include git commit message")
	f.Bool("date", false, "include build timestamp")
	f.Bool("full", false, "show every recorded bit of build metadata")
	f.String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	formatName, _ := flags.GetString("format")
	format, err := diagfmt.ParseFormat(formatName)
	if err != nil {
		return err
	}
	colorName, _ := cmd.Root().PersistentFlags().GetString("color")
	colorMode, err := readSwitch("color", colorName)
	if err != nil {
		return err
	}
	full, _ := flags.GetBool("full")
	opts := versionOptions{format: format, color: colorMode.on(os.Stdout)}
	opts.hash, _ = flags.GetBool("hash")
	opts.message, _ = flags.GetBool("message")
	opts.date, _ = flags.GetBool("date")
	opts.hash, opts.message, opts.date = opts.hash || full, opts.message || full, opts.date || full

	info := version.Current()
	if format != diagfmt.FormatPretty {
		return diagfmt.Encode(cmd.OutOrStdout(), format, buildVersionPayload(info, opts))
	}
	writeVersion(cmd.OutOrStdout(), info, opts)
	return nil
}

func writeVersion(w io.Writer, info version.Info, opts versionOptions) {
	v := info.Version
	if opts.color {
		// version runs without a session, so the global switch is still
		// whatever fatih/color guessed for stdout
		saved := color.NoColor
		color.NoColor = false
		v = version.Colorize(v)
		color.NoColor = saved
	}
	fmt.Fprintf(w, "plexlex %s (keyword table v%s)\n", v, token.KeywordTableVersion)
	p := buildVersionPayload(info, opts)
	for _, field := range []struct{ label, value string }{
		{"commit:", p.GitCommit},
		{"message:", p.GitMessage},
		{"built:", p.BuildDate},
	} {
		if field.value != "" {
			fmt.Fprintf(w, "%-8s %s\n", field.label, field.value)
		}
	}
}

// buildVersionPayload fills the requested fields, writing "unknown" for
// metadata the build did not record.
func buildVersionPayload(info version.Info, opts versionOptions) versionPayload {
	p := versionPayload{
		Tool:         "plexlex",
		Version:      info.Version,
		KeywordTable: token.KeywordTableVersion,
	}
	if opts.hash {
		p.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.message {
		p.GitMessage = valueOrUnknown(info.GitMessage)
	}
	if opts.date {
		p.BuildDate = valueOrUnknown(info.BuildDate)
	}
	return p
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

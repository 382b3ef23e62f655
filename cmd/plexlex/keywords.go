package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"plexlex/internal/diagfmt"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Print the reserved word table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, err := cmd.Flags().GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		format, err := diagfmt.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
		mode, err := readSwitch("color", colorFlag)
		if err != nil {
			return err
		}
		return diagfmt.FormatKeywords(cmd.OutOrStdout(), format, useColor(mode, os.Stdout))
	},
}

func init() {
	keywordsCmd.Flags().String("format", "pretty", "output format (pretty|json|yaml|msgpack)")
}

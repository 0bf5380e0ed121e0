package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/byte4ever/ziptemplates/stamper"
)

// newStampCmd creates the stamp command.
func newStampCmd() *cobra.Command {
	var (
		stampInfoFiles []string
		output         string
		format         string
		formatFile     string
	)

	cmd := &cobra.Command{
		Use:   "stamp",
		Short: "Substitute {VAR} placeholders from workspace status files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const errCtx = "stamp"

			if formatFile == "" && format == "" {
				return fmt.Errorf(
					"%s: %w", errCtx, errNoFormat,
				)
			}

			if formatFile != "" {
				content, err := os.ReadFile( //nolint:gosec // path from CLI flag
					formatFile,
				)
				if err != nil {
					return fmt.Errorf(
						"%s: reading format file: %w",
						errCtx, err,
					)
				}

				format = string(content)
			}

			result, err := stamper.Stamp(stampInfoFiles, format)
			if err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			return withOutput(cmd, output, func(out io.Writer) error {
				_, err := io.WriteString(out, result)

				return err
			})
		},
	}

	cmd.Flags().StringArrayVar(
		&stampInfoFiles, "stamp-info-file", nil,
		"path to workspace status file (repeatable)",
	)
	cmd.Flags().StringVar(
		&output, "output", "",
		"output file path (default: stdout)",
	)
	cmd.Flags().StringVar(
		&formatFile, "format-file", "",
		"file containing stamp variable placeholders",
	)
	cmd.Flags().StringVar(
		&format, "format", "",
		"format string containing stamp variables",
	)

	cmd.MarkFlagsMutuallyExclusive("format", "format-file")

	return cmd
}

var errNoFormat = errors.New(
	"one of --format or --format-file is required",
)

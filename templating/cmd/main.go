// Binary ziptpl parses and renders "{{key}}" templates,
// flattens JSON/YAML data into dotted keys and stamps
// {VAR} placeholders from workspace status files.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// version is set via ldflags at build time.
var version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
	); err != nil {
		os.Exit(reportFatal(err))
	}
}

// reportFatal logs err and returns the process exit code.
func reportFatal(err error) int {
	slog.Error("fatal", "error", err)

	return 1
}

// newRootCmd creates the root command for the ziptpl CLI.
func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "ziptpl",
		Short: "Render {{key}} templates from flat or positional values",
		Long: `ziptpl renders templates whose placeholders are written as
{{dotted.path}}. Values come from JSON/YAML data files (flattened to
dotted keys), workspace status files, NAME=VALUE variables or, with
--value, from an ordered list. Missing keys render as empty text.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}

			slog.SetDefault(slog.New(slog.NewTextHandler(
				cmd.ErrOrStderr(),
				&slog.HandlerOptions{Level: level},
			)))
		},
	}

	cmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"enable debug logging",
	)

	cmd.AddCommand(
		newRenderCmd(),
		newFlattenCmd(),
		newParseCmd(),
		newStampCmd(),
	)

	return cmd
}

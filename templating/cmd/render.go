package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byte4ever/ziptemplates/templating"
)

type renderOptions struct {
	template       string
	output         string
	stampInfoFiles []string
	dataFiles      []string
	variables      []string
	imports        []string
	values         []string
	executable     bool
	startTag       string
	endTag         string
}

// newRenderCmd creates the render command.
func newRenderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a template file",
		Long: `Render a template by key or by position.

Examples:
  ziptpl render --template greet.txt --data user.json
  ziptpl render --template deploy.yaml --data cfg=prod.yaml --variable TAG=v1.2
  ziptpl render --template row.txt --value Sam --value 12.34`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd, opts)
		},
	}

	fl := cmd.Flags()

	fl.StringVar(
		&opts.template, "template", "",
		"input template file path (stdin if empty)",
	)
	fl.StringVar(
		&opts.output, "output", "",
		"output file path (stdout if empty)",
	)
	fl.StringArrayVar(
		&opts.stampInfoFiles, "stamp-info-file", nil,
		"stamp info file path (repeatable)",
	)
	fl.StringArrayVar(
		&opts.dataFiles, "data", nil,
		"JSON/YAML data file as path or NAME=path (repeatable)",
	)
	fl.StringArrayVar(
		&opts.variables, "variable", nil,
		"variable in NAME=VALUE format (repeatable)",
	)
	fl.StringArrayVar(
		&opts.imports, "imports", nil,
		"import in NAME=filename format (repeatable)",
	)
	fl.StringArrayVar(
		&opts.values, "value", nil,
		"positional value, in placeholder order (repeatable)",
	)
	fl.BoolVar(
		&opts.executable, "executable", false,
		"set executable bit on output file",
	)
	fl.StringVar(
		&opts.startTag, "start-tag", "{{",
		"start tag for template placeholders",
	)
	fl.StringVar(
		&opts.endTag, "end-tag", "}}",
		"end tag for template placeholders",
	)

	cmd.MarkFlagsMutuallyExclusive("value", "data")
	cmd.MarkFlagsMutuallyExclusive("value", "variable")
	cmd.MarkFlagsMutuallyExclusive("value", "imports")

	return cmd
}

func runRender(cmd *cobra.Command, opts renderOptions) error {
	const errCtx = "render"

	en := templating.Engine{
		StartTag:       opts.startTag,
		EndTag:         opts.endTag,
		StampInfoFiles: opts.stampInfoFiles,
		DataFiles:      opts.dataFiles,
		In:             cmd.InOrStdin(),
		Out:            cmd.OutOrStdout(),
	}

	var err error

	if cmd.Flags().Changed("value") {
		err = en.ExpandPositional(
			opts.template, opts.output, opts.values, opts.executable,
		)
	} else {
		err = en.Expand(
			opts.template, opts.output,
			opts.variables, opts.imports, opts.executable,
		)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

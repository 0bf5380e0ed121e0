package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/byte4ever/ziptemplates/ziptemplate"
)

// parsedTemplate is the JSON shape printed by the parse
// command.
type parsedTemplate struct {
	Statics      []string `json:"statics"`
	Placeholders []string `json:"placeholders"`
	Keys         []string `json:"keys"`
}

// newParseCmd creates the parse command.
func newParseCmd() *cobra.Command {
	var (
		tplPath  string
		startTag string
		endTag   string
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Show the static segments and placeholders of a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			const errCtx = "parse"

			var (
				content []byte
				err     error
			)

			if tplPath != "" {
				content, err = os.ReadFile(tplPath) //nolint:gosec // path from CLI flag
			} else {
				content, err = io.ReadAll(cmd.InOrStdin())
			}

			if err != nil {
				return fmt.Errorf(
					"%s: reading template: %w", errCtx, err,
				)
			}

			tp := ziptemplate.ParseTags(
				string(content), startTag, endTag,
			)

			keys := tp.Keys()
			if keys == nil {
				keys = []string{}
			}

			if err := writeJSON(cmd.OutOrStdout(), parsedTemplate{
				Statics:      tp.Statics(),
				Placeholders: tp.Placeholders(),
				Keys:         keys,
			}); err != nil {
				return fmt.Errorf("%s: %w", errCtx, err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(
		&tplPath, "template", "",
		"input template file path (stdin if empty)",
	)
	cmd.Flags().StringVar(
		&startTag, "start-tag", "{{",
		"start tag for template placeholders",
	)
	cmd.Flags().StringVar(
		&endTag, "end-tag", "}}",
		"end tag for template placeholders",
	)

	return cmd
}

package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/byte4ever/ziptemplates/flatten"
)

// newFlattenCmd creates the flatten command.
func newFlattenCmd() *cobra.Command {
	var (
		inFile  string
		format  string
		asJSON  bool
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "flatten",
		Short: "Flatten JSON/YAML data into dotted keys",
		Long: `Flatten nested JSON or YAML into one key=value line per leaf,
sorted by key. Arrays use element indexes as path segments.

Examples:
  ziptpl flatten --infile user.json
  cat cfg.yaml | ziptpl flatten --format yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFlatten(cmd, inFile, format, outFile, asJSON)
		},
	}

	cmd.Flags().StringVar(
		&inFile, "infile", "",
		"input data file path (stdin if empty)",
	)
	cmd.Flags().StringVar(
		&format, "format", "",
		"input format: json or yaml (default: from file extension)",
	)
	cmd.Flags().StringVar(
		&outFile, "outfile", "",
		"output file path (stdout if empty)",
	)
	cmd.Flags().BoolVar(
		&asJSON, "json", false,
		"print a JSON object instead of key=value lines",
	)

	return cmd
}

func runFlatten(
	cmd *cobra.Command,
	inFile string,
	format string,
	outFile string,
	asJSON bool,
) error {
	const errCtx = "flatten"

	fmtName := format
	if fmtName == "" {
		if inFile == "" {
			return fmt.Errorf(
				"%s: --format is required when reading stdin",
				errCtx,
			)
		}

		fmtName = inFile
	}

	dataFormat, err := resolveFormat(fmtName, format == "")
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	in := cmd.InOrStdin()

	if inFile != "" {
		fi, err := os.Open(inFile) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf(
				"%s: opening input: %w", errCtx, err,
			)
		}

		defer fi.Close() //nolint:errcheck // best-effort close

		in = fi
	}

	flat, err := flatten.Decode(in, dataFormat)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return withOutput(cmd, outFile, func(out io.Writer) error {
		if asJSON {
			return writeJSON(out, flat)
		}

		for _, key := range slices.Sorted(maps.Keys(flat)) {
			if _, err := fmt.Fprintf(
				out, "%s=%s\n", key, flat[key],
			); err != nil {
				return err
			}
		}

		return nil
	})
}

// resolveFormat reads name as a format name, or as a
// path whose extension names the format.
func resolveFormat(
	name string,
	fromPath bool,
) (flatten.Format, error) {
	if fromPath {
		return flatten.FormatFromPath(name)
	}

	return flatten.ParseFormat(name)
}

// writeJSON writes value as indented JSON.
func writeJSON(out io.Writer, value any) error {
	raw, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	raw = append(raw, '\n')

	if _, err := out.Write(raw); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}

	return nil
}

// withOutput runs write against outFile, or the command
// output when outFile is empty.
func withOutput(
	cmd *cobra.Command,
	outFile string,
	write func(io.Writer) error,
) (retErr error) {
	const errCtx = "writing output"

	if outFile == "" {
		if err := write(cmd.OutOrStdout()); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	fo, err := os.Create(outFile) //nolint:gosec // path from CLI flag
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fo.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	if err := write(fo); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

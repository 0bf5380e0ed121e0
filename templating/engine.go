package templating

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/byte4ever/ziptemplates/flatten"
	"github.com/byte4ever/ziptemplates/stamper"
	"github.com/byte4ever/ziptemplates/ziptemplate"
)

// Engine expands templates using stamp info files, data
// files and explicit variables.
type Engine struct {
	// StartTag and EndTag delimit placeholders. Empty
	// values mean "{{" and "}}".
	StartTag string
	EndTag   string

	// StampInfoFiles are "KEY VALUE" status files.
	StampInfoFiles []string

	// DataFiles are JSON or YAML files given as "path" or
	// "NAME=path". Named files are mounted under "NAME.".
	DataFiles []string

	// In is read when no template path is given and Out is
	// written when no output path is given. Nil means
	// os.Stdin and os.Stdout.
	In  io.Reader
	Out io.Writer
}

// Expand reads a template, substitutes placeholders by
// key and writes the result. If tplPath is empty it reads
// In; if outPath is empty it writes to Out. If
// executable is true the output file receives mode 0777
// instead of 0666.
func (en *Engine) Expand(
	tplPath string,
	outPath string,
	vars []string,
	imports []string,
	executable bool,
) error {
	const errCtx = "expanding template"

	values, err := en.Values(vars, imports)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tpl, err := en.readTemplate(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.writeOutput(
		outPath, executable, tpl.Render(values),
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// ExpandPositional reads a template and fills its
// placeholders in order from values, ignoring their keys.
func (en *Engine) ExpandPositional(
	tplPath string,
	outPath string,
	values []string,
	executable bool,
) error {
	const errCtx = "expanding template positionally"

	tpl, err := en.readTemplate(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if keys := tpl.Keys(); len(keys) != len(values) {
		slog.Warn(
			"positional value count differs from placeholders",
			"placeholders", len(keys),
			"values", len(values),
		)
	}

	if err := en.writeOutput(
		outPath, executable, tpl.RenderPositional(values),
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Values builds the flat value map used by Expand.
//
// Layers are applied in order, later ones overriding
// earlier ones:
//  1. Stamps from StampInfoFiles.
//  2. Flattened DataFiles.
//  3. Each variable NAME=VALUE, with VALUE expanded
//     against stamps using single-brace tags, stored as
//     both "NAME" and "variables.NAME".
//  4. Each import NAME=filename: the file is rendered
//     against the map built so far with the configured
//     tags, then stamp-expanded, and stored as
//     "imports.NAME".
func (en *Engine) Values(
	vars []string,
	imports []string,
) (map[string]string, error) {
	const errCtx = "building values"

	stamps, err := stamper.LoadStamps(en.StampInfoFiles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	values := make(map[string]string, len(stamps))
	for key, val := range stamps {
		values[key] = val
	}

	if err := en.mergeData(values); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := resolveVars(vars, stamps, values); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.resolveImports(
		imports, stamps, values,
	); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug(
		"values resolved",
		"stamps", len(stamps),
		"data_files", len(en.DataFiles),
		"keys", len(values),
	)

	return values, nil
}

// mergeData flattens each data file into values.
func (en *Engine) mergeData(values map[string]string) error {
	const errCtx = "loading data files"

	for _, df := range en.DataFiles {
		name, pa, named := strings.Cut(df, "=")
		if !named {
			pa = df
		}

		flat, err := flatten.File(pa)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		if named {
			flat = flatten.Prefix(name, flat)
		}

		for key, val := range flat {
			values[key] = val
		}
	}

	return nil
}

// resolveVars processes NAME=VALUE variables.
func resolveVars(
	vars []string,
	stamps map[string]string,
	values map[string]string,
) error {
	const errCtx = "resolving variables"

	for _, vr := range vars {
		name, raw, ok := strings.Cut(vr, "=")
		if !ok {
			return fmt.Errorf(
				"%s: variable must be VAR=value, got %s",
				errCtx, vr,
			)
		}

		val := stamper.Expand(raw, stamps)

		values[name] = val
		values["variables."+name] = val
	}

	return nil
}

// resolveImports processes NAME=filename imports.
func (en *Engine) resolveImports(
	imports []string,
	stamps map[string]string,
	values map[string]string,
) error {
	const errCtx = "resolving imports"

	for _, im := range imports {
		name, pa, ok := strings.Cut(im, "=")
		if !ok {
			return fmt.Errorf(
				"%s: import must be NAME=filename, got %s",
				errCtx, im,
			)
		}

		content, err := os.ReadFile(pa) //nolint:gosec // paths from CLI flags
		if err != nil {
			return fmt.Errorf(
				"%s: reading %s: %w",
				errCtx, pa, err,
			)
		}

		rendered := ziptemplate.ParseTags(
			string(content), en.StartTag, en.EndTag,
		).Render(values)

		values["imports."+name] = stamper.Expand(rendered, stamps)
	}

	return nil
}

// readTemplate reads and parses the template at tplPath,
// or stdin when tplPath is empty.
func (en *Engine) readTemplate(
	tplPath string,
) (*ziptemplate.Template, error) {
	const errCtx = "reading template"

	var (
		content []byte
		err     error
	)

	if tplPath != "" {
		content, err = os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
	} else {
		content, err = io.ReadAll(en.input())
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return ziptemplate.ParseTags(
		string(content), en.StartTag, en.EndTag,
	), nil
}

func (en *Engine) input() io.Reader {
	if en.In == nil {
		return os.Stdin
	}

	return en.In
}

func (en *Engine) output() io.Writer {
	if en.Out == nil {
		return os.Stdout
	}

	return en.Out
}

// writeOutput writes result to outPath, or stdout when
// outPath is empty.
func (en *Engine) writeOutput(
	outPath string,
	executable bool,
	result string,
) (retErr error) {
	const errCtx = "writing output"

	if outPath == "" {
		if _, err := io.WriteString(en.output(), result); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	var perm os.FileMode = 0o666
	if executable {
		perm = 0o777
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		outPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	if _, err := io.WriteString(fi, result); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

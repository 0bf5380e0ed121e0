package flatten

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// Format names a structured input encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for inputs whose format cannot be
// determined.
var ErrUnknownFormat = errors.New("unknown data format")

// ErrTrailingData is returned when a JSON input holds more than one
// value.
var ErrTrailingData = errors.New("unexpected data after json value")

// ParseFormat maps a user supplied name ("json", "yaml", "yml") to a
// Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Decode reads one structured value from in and flattens it.
func Decode(in io.Reader, format Format) (map[string]string, error) {
	switch format {
	case FormatJSON:
		return JSON(in)
	case FormatYAML:
		return YAML(in)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// JSON decodes a single JSON value from in and flattens it. Integer
// literals keep their exact digits; other numbers use their canonical
// float text. Anything after the value is an error.
func JSON(in io.Reader) (map[string]string, error) {
	const errCtx = "flattening json"

	decoder := json.NewDecoder(in)
	decoder.UseNumber()

	var value any

	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var extra any

	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", errCtx, ErrTrailingData)
	}

	return Flatten(value), nil
}

// YAML decodes every document of a YAML stream. A single document is
// flattened at the root; several documents are flattened like an array,
// so the second document's "name" lives under "1.name". Empty documents
// are skipped and do not take an index: in "a: 1\n---\n---\nb: 2" the
// key b lives under "1.b".
func YAML(in io.Reader) (map[string]string, error) {
	const errCtx = "flattening yaml"

	docs, err := decodeAllDocs(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	switch len(docs) {
	case 0:
		return map[string]string{}, nil
	case 1:
		return Flatten(docs[0]), nil
	default:
		return Flatten(docs), nil
	}
}

// decodeAllDocs decodes all YAML documents from in, skipping empty ones.
func decodeAllDocs(in io.Reader) ([]any, error) {
	decoder := yaml.NewDecoder(in)

	var docs []any

	for {
		var doc any

		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		if doc == nil {
			continue
		}

		docs = append(docs, doc)
	}

	return docs, nil
}

// File flattens the JSON or YAML file at path, choosing the decoder from
// the extension.
func File(path string) (result map[string]string, retErr error) {
	const errCtx = "flattening file"

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	fi, err := os.Open(path) //nolint:gosec // path is caller-provided by design
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	defer func() {
		if closeErr := fi.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("%s: %w", errCtx, closeErr)
		}
	}()

	flat, err := Decode(fi, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return flat, nil
}

// Marshal flattens an arbitrary Go value through its JSON encoding, so
// struct tags decide the path segments.
func Marshal(value any) (map[string]string, error) {
	const errCtx = "flattening value"

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	flat, err := JSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return flat, nil
}

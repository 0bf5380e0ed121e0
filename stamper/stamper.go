package stamper

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"
)

// Single-brace tags used for stamp expansion.
const (
	StartTag = "{"
	EndTag   = "}"
)

// LoadStamps reads status files and merges them into one
// map. Each line is "KEY VALUE" split on the first space;
// lines without a space are skipped. Later files override
// earlier ones.
func LoadStamps(
	infoFiles []string,
) (map[string]string, error) {
	const errCtx = "loading stamps"

	stamps := make(map[string]string)

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			key, val, ok := strings.Cut(
				strings.TrimSuffix(line, "\r"), " ",
			)
			if ok {
				stamps[key] = val
			}
		}
	}

	return stamps, nil
}

// Expand substitutes {VAR} tags in format with values
// from stamps. Tags without a stamp are written back
// unchanged.
func Expand(
	format string,
	stamps map[string]string,
) string {
	return fasttemplate.ExecuteFuncString(
		format, StartTag, EndTag,
		func(w io.Writer, tag string) (int, error) {
			if val, ok := stamps[tag]; ok {
				return io.WriteString(w, val)
			}

			return io.WriteString(w, StartTag+tag+EndTag)
		},
	)
}

// Stamp loads stamps from infoFiles and expands format
// against them.
func Stamp(
	infoFiles []string,
	format string,
) (string, error) {
	const errCtx = "stamping"

	stamps, err := LoadStamps(infoFiles)
	if err != nil {
		return "", fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return Expand(format, stamps), nil
}

package ziptemplate

import "strings"

// Default placeholder markers.
const (
	OpenTag  = "{{"
	CloseTag = "}}"
)

// Template is the parsed form of a template string. The statics and
// placeholders slices always have the same length; the last placeholder
// is an empty sentinel standing for "nothing after the last static".
type Template struct {
	statics      []string
	placeholders []string
	sizeHint     int
}

// Parse splits text on "{{" and "}}" markers. It never fails: an
// unterminated "{{" is kept as static text.
func Parse(text string) *Template {
	return ParseTags(text, OpenTag, CloseTag)
}

// ParseTags is Parse with custom markers. Empty tags fall back to the
// defaults.
func ParseTags(
	text string,
	openTag string,
	closeTag string,
) *Template {
	if openTag == "" {
		openTag = OpenTag
	}

	if closeTag == "" {
		closeTag = CloseTag
	}

	var (
		statics      []string
		placeholders []string
	)

	cursor := 0

	for {
		start := strings.Index(text[cursor:], openTag)
		if start < 0 {
			break
		}

		start += cursor
		keyStart := start + len(openTag)

		end := strings.Index(text[keyStart:], closeTag)
		if end < 0 {
			break
		}

		end += keyStart

		statics = append(statics, text[cursor:start])
		placeholders = append(
			placeholders,
			strings.TrimSpace(text[keyStart:end]),
		)
		cursor = end + len(closeTag)
	}

	statics = append(statics, text[cursor:])

	if len(placeholders) < len(statics) {
		placeholders = append(placeholders, "")
	}

	return &Template{
		statics:      statics,
		placeholders: placeholders,
		sizeHint:     len(text) + len(text)/2,
	}
}

// StaticPartsCount returns the number of static segments, which is one
// more than the number of placeholders found in the source.
func (tp *Template) StaticPartsCount() int {
	return len(tp.statics)
}

// Statics returns a copy of the static segments.
func (tp *Template) Statics() []string {
	return append([]string(nil), tp.statics...)
}

// Placeholders returns a copy of the placeholder keys, including the
// trailing empty sentinel.
func (tp *Template) Placeholders() []string {
	return append([]string(nil), tp.placeholders...)
}

// Keys returns the placeholder keys in occurrence order without the
// trailing sentinel. A positional render expects its values in this order.
func (tp *Template) Keys() []string {
	return append([]string(nil), tp.keys()...)
}

// keys tolerates the zero Template, which has no sentinel.
func (tp *Template) keys() []string {
	if len(tp.placeholders) == 0 {
		return nil
	}

	return tp.placeholders[:len(tp.placeholders)-1]
}

package ziptemplate

import "strings"

// Render substitutes every placeholder with its value in values. Keys
// absent from values render as the empty string.
func (tp *Template) Render(values map[string]string) string {
	if len(tp.statics) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.Grow(tp.sizeHint)

	last := len(tp.statics) - 1

	for idx, static := range tp.statics[:last] {
		sb.WriteString(static)
		sb.WriteString(values[tp.placeholders[idx]])
	}

	// The sentinel placeholder after the last static never resolves,
	// even when values carries an entry for the empty key.
	sb.WriteString(tp.statics[last])

	return sb.String()
}

// RenderPositional fills the i-th placeholder with values[i] without
// looking at keys. Missing trailing values render empty and extra values
// are ignored, so the caller must supply them in Keys order.
func (tp *Template) RenderPositional(values []string) string {
	if len(tp.statics) == 0 {
		return ""
	}

	var sb strings.Builder

	sb.Grow(tp.sizeHint)

	last := len(tp.statics) - 1

	for idx, static := range tp.statics[:last] {
		sb.WriteString(static)

		if idx < len(values) {
			sb.WriteString(values[idx])
		}
	}

	sb.WriteString(tp.statics[last])

	return sb.String()
}

// Values resolves the template keys against values into a slice suitable
// for RenderPositional.
func (tp *Template) Values(values map[string]string) []string {
	keys := tp.keys()
	out := make([]string, len(keys))

	for idx, key := range keys {
		out[idx] = values[key]
	}

	return out
}

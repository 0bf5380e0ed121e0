// Package templating expands "{{key}}" templates from files using the
// ziptemplate engine. The value map is layered from stamp info files,
// flattened JSON/YAML data files, NAME=VALUE variables and imported
// partials; keys missing from every layer render as empty text.
//
// The Engine type holds configuration (tags, stamp and data files) and
// expands templates via Expand (by key) or ExpandPositional (by order).
package templating

// Package ziptemplate parses "{{key}}" templates into alternating static
// segments and placeholder keys, then renders them by zipping the statics
// with values resolved from a flat map or from a positional slice.
//
// A parsed Template is immutable and may be rendered concurrently.
package ziptemplate

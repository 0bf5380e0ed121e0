// Package stamper reads Bazel-style workspace status files ("KEY VALUE"
// lines) into a flat value map and expands single-brace {VAR} tags
// against it. Unknown tags are preserved.
package stamper

// Package kotlin is the Kotlin front end used by the lint rules.
//
// Lex splits a source file into tokens that keep their byte offset and their
// 1-based line and column, which is all the style rules need: they reason about
// layout (semicolons, blank lines, indentation, comments) rather than semantics.
// String templates, raw strings and nested block comments are single tokens, so
// rules never mistake their contents for code.
//
// ValidateSyntax parses a file with the tree-sitter Kotlin grammar and reports the
// first syntax error, which stops linting of that file. Grammar errors count only
// when StructuralError confirms unbalanced delimiters or an unterminated literal.
package kotlin

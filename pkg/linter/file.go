package linter

import (
	"sort"
	"unicode/utf8"

	"github.com/platinummonkey/ktlint-report/pkg/editorconfig"
	"github.com/platinummonkey/ktlint-report/pkg/kotlin"
)

// Line is one line of a file
type Line struct {
	Number int
	// Start is the offset of the first byte of the line
	Start int
	// End is the offset of the line terminator, or the file length
	End int
	// Next is the offset of the following line
	Next int
	Text string
}

// Blank reports whether the line holds only whitespace
func (l Line) Blank() bool {
	for i := 0; i < len(l.Text); i++ {
		if c := l.Text[i]; c != ' ' && c != '\t' && c != '\f' {
			return false
		}
	}
	return true
}

// File is a Kotlin source prepared for linting
type File struct {
	Path    string
	Content []byte
	Style   editorconfig.StyleConfig
	Android bool

	tokens []kotlin.Token
	lines  []Line
}

// NewFile tokenizes content and indexes its lines
func NewFile(path string, content []byte, style editorconfig.StyleConfig, android bool) *File {
	return &File{
		Path:    path,
		Content: content,
		Style:   style,
		Android: android,
		tokens:  kotlin.Lex(content),
		lines:   splitLines(content),
	}
}

// Tokens returns the file's tokens, ending with EOF
func (f *File) Tokens() []kotlin.Token {
	return f.tokens
}

// Lines returns the file's lines. A final line terminator does not start
// another line.
func (f *File) Lines() []Line {
	return f.lines
}

func splitLines(content []byte) []Line {
	var lines []Line
	start := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			lines = append(lines, Line{Number: len(lines) + 1, Start: start, End: i, Next: i + 1, Text: string(content[start:i])})
			start = i + 1
		case '\r':
			next := i + 1
			if next < len(content) && content[next] == '\n' {
				next++
			}
			lines = append(lines, Line{Number: len(lines) + 1, Start: start, End: i, Next: next, Text: string(content[start:i])})
			start = next
			i = next - 1
		}
	}
	if start < len(content) || len(content) == 0 {
		lines = append(lines, Line{Number: len(lines) + 1, Start: start, End: len(content), Next: len(content), Text: string(content[start:])})
	}
	return lines
}

// Position converts a byte offset into a 1-based line and rune column
func (f *File) Position(offset int) (int, int) {
	if len(f.lines) == 0 {
		return 1, 1
	}
	idx := sort.Search(len(f.lines), func(i int) bool { return f.lines[i].Start > offset }) - 1
	if idx < 0 {
		idx = 0
	}
	line := f.lines[idx]
	if offset > len(f.Content) {
		offset = len(f.Content)
	}
	if offset < line.Start {
		offset = line.Start
	}
	return line.Number, utf8.RuneCount(f.Content[line.Start:offset]) + 1
}

// Offset converts a 1-based line and rune column back into a byte offset
func (f *File) Offset(line, column int) int {
	if line < 1 || len(f.lines) == 0 {
		return 0
	}
	if line > len(f.lines) {
		return len(f.Content)
	}
	l := f.lines[line-1]
	offset := l.Start
	for col := 1; col < column && offset < len(f.Content); col++ {
		_, size := utf8.DecodeRune(f.Content[offset:])
		offset += size
	}
	return offset
}

// TokenAt returns the token covering offset
func (f *File) TokenAt(offset int) (kotlin.Token, bool) {
	idx := sort.Search(len(f.tokens), func(i int) bool { return f.tokens[i].Offset > offset }) - 1
	if idx < 0 || offset >= f.tokens[idx].End() {
		return kotlin.Token{}, false
	}
	return f.tokens[idx], true
}

// InsideLiteral reports whether offset lies strictly inside a string literal
// or a block comment, such as a line that belongs to a raw string
func (f *File) InsideLiteral(offset int) bool {
	tok, ok := f.TokenAt(offset)
	if !ok || offset == tok.Offset {
		return false
	}
	return tok.Kind == kotlin.String || tok.Kind == kotlin.BlockComment
}

// At builds a violation positioned at offset
func (f *File) At(offset int, message string, fix *Fix) Violation {
	line, col := f.Position(offset)
	return Violation{Line: line, Column: col, Message: message, SuggestedFix: fix}
}

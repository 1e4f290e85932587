package kotlin

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/kotlin"
)

var (
	languageOnce sync.Once
	language     *sitter.Language
)

func kotlinLanguage() *sitter.Language {
	languageOnce.Do(func() {
		language = kotlin.GetLanguage()
	})
	return language
}

// SyntaxError describes the first unparsable construct of a file
type SyntaxError struct {
	Line    int
	Column  int
	Snippet string
	Missing bool
}

func (e *SyntaxError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%d:%d missing %s", e.Line, e.Column, e.Snippet)
	}
	return fmt.Sprintf("%d:%d unexpected %q", e.Line, e.Column, e.Snippet)
}

// ValidateSyntax parses src with the tree-sitter Kotlin grammar. A grammar error
// is reported only when the token stream confirms a structural break; newer
// constructs the grammar lacks, such as fun interface, pass. The error result
// reports parser failures such as cancellation, not syntax problems.
func ValidateSyntax(ctx context.Context, src []byte) (*SyntaxError, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(kotlinLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}
	broken := StructuralError(Lex(src))
	if broken == nil {
		return nil, nil
	}

	if node := firstError(root); node != nil {
		return toSyntaxError(node, src), nil
	}

	return &SyntaxError{Line: broken.Line, Column: broken.Column, Snippet: snippet(src, broken.Offset, broken.End())}, nil
}

// firstError returns the first ERROR or MISSING node in document order
func firstError(node *sitter.Node) *sitter.Node {
	if node.IsError() || node.IsMissing() {
		return node
	}
	if !node.HasError() {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := firstError(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

func toSyntaxError(node *sitter.Node, src []byte) *SyntaxError {
	start := node.StartByte()
	line, col := position(src, int(start))

	if node.IsMissing() {
		return &SyntaxError{Line: line, Column: col, Snippet: node.Type(), Missing: true}
	}
	return &SyntaxError{Line: line, Column: col, Snippet: snippet(src, int(start), int(node.EndByte()))}
}

// position converts a byte offset into a 1-based line and rune column
func position(src []byte, offset int) (int, int) {
	if offset > len(src) {
		offset = len(src)
	}
	line, col := 1, 1
	for _, r := range string(src[:offset]) {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

const maxSnippet = 40

func snippet(src []byte, start, end int) string {
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return ""
	}
	text := string(src[start:end])
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if runes := []rune(text); len(runes) > maxSnippet {
		text = string(runes[:maxSnippet])
	}
	return text
}

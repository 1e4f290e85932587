package kotlin

import "fmt"

// Kind classifies a token
type Kind int

const (
	Identifier Kind = iota
	Keyword
	Number
	String
	Char
	LineComment
	BlockComment
	Punct
	Whitespace
	Newline
	EOF
)

var kindNames = [...]string{
	Identifier:   "identifier",
	Keyword:      "keyword",
	Number:       "number",
	String:       "string",
	Char:         "char",
	LineComment:  "line-comment",
	BlockComment: "block-comment",
	Punct:        "punct",
	Whitespace:   "whitespace",
	Newline:      "newline",
	EOF:          "eof",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is a lexical token with its position
type Token struct {
	Kind   Kind
	Text   string
	Offset int
	Line   int
	Column int
	// Unterminated marks a string, char, comment or quoted identifier that
	// runs into the end of its line or the file
	Unterminated bool
}

// End returns the byte offset just past the token
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// IsComment reports whether the token is a comment
func (t Token) IsComment() bool {
	return t.Kind == LineComment || t.Kind == BlockComment
}

// IsTrivia reports whether the token is whitespace, a newline or a comment
func (t Token) IsTrivia() bool {
	return t.Kind == Whitespace || t.Kind == Newline || t.IsComment()
}

// Is reports whether the token is punctuation or a keyword with the given text
func (t Token) Is(text string) bool {
	return (t.Kind == Punct || t.Kind == Keyword) && t.Text == text
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Kind, t.Text)
}

// keywords are Kotlin's hard and frequently used soft keywords
var keywords = map[string]bool{
	"as": true, "break": true, "class": true, "continue": true, "do": true,
	"else": true, "false": true, "for": true, "fun": true, "if": true,
	"in": true, "interface": true, "is": true, "null": true, "object": true,
	"package": true, "return": true, "super": true, "this": true, "throw": true,
	"true": true, "try": true, "typealias": true, "typeof": true, "val": true,
	"var": true, "when": true, "while": true, "import": true, "enum": true,
	"companion": true, "data": true, "sealed": true, "override": true,
	"private": true, "protected": true, "public": true, "internal": true,
	"abstract": true, "open": true, "inline": true, "suspend": true,
	"annotation": true, "constructor": true, "init": true, "catch": true,
	"finally": true,
}

// threeCharOps and twoCharOps are multi-character operators, longest first
var (
	threeCharOps = []string{"===", "!==", "..<"}
	twoCharOps   = []string{
		"==", "!=", "<=", ">=", "&&", "||", "++", "--", "+=", "-=", "*=", "/=", "%=",
		"->", "::", "..", "?.", "?:", "!!",
	}
)

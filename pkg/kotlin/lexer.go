package kotlin

import (
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	src    []byte
	pos    int
	line   int
	col    int
	tokens []Token
}

// Lex splits src into tokens. The last token is always EOF. Lex never fails:
// unterminated literals and comments extend to the end of their line or the file.
func Lex(src []byte) []Token {
	lx := &lexer{src: src, line: 1, col: 1}
	for lx.pos < len(lx.src) {
		lx.scan()
	}
	lx.tokens = append(lx.tokens, Token{Kind: EOF, Offset: len(src), Line: lx.line, Column: lx.col})
	return lx.tokens
}

func (lx *lexer) peek(off int) byte {
	if lx.pos+off < len(lx.src) {
		return lx.src[lx.pos+off]
	}
	return 0
}

func (lx *lexer) hasPrefix(s string) bool {
	if lx.pos+len(s) > len(lx.src) {
		return false
	}
	return string(lx.src[lx.pos:lx.pos+len(s)]) == s
}

// advance consumes one rune, keeping line and column in step
func (lx *lexer) advance() rune {
	r, size := utf8.DecodeRune(lx.src[lx.pos:])
	lx.pos += size
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return r
}

func (lx *lexer) advanceN(n int) {
	for i := 0; i < n && lx.pos < len(lx.src); i++ {
		lx.advance()
	}
}

func (lx *lexer) scan() {
	start, line, col := lx.pos, lx.line, lx.col
	closed := true
	emit := func(kind Kind) {
		lx.tokens = append(lx.tokens, Token{
			Kind:         kind,
			Text:         string(lx.src[start:lx.pos]),
			Offset:       start,
			Line:         line,
			Column:       col,
			Unterminated: !closed,
		})
	}

	c := lx.src[lx.pos]
	switch {
	case c == '\n':
		lx.advance()
		emit(Newline)
	case c == '\r':
		lx.advance()
		if lx.peek(0) == '\n' {
			lx.advance()
		}
		emit(Newline)
	case c == ' ' || c == '\t' || c == '\f':
		for lx.pos < len(lx.src) && (lx.src[lx.pos] == ' ' || lx.src[lx.pos] == '\t' || lx.src[lx.pos] == '\f') {
			lx.advance()
		}
		emit(Whitespace)
	case lx.hasPrefix("//"):
		for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' && lx.src[lx.pos] != '\r' {
			lx.advance()
		}
		emit(LineComment)
	case lx.hasPrefix("/*"):
		closed = lx.scanBlockComment()
		emit(BlockComment)
	case lx.hasPrefix(`"""`):
		closed = lx.scanRawString()
		emit(String)
	case c == '"':
		closed = lx.scanString()
		emit(String)
	case c == '\'':
		closed = lx.scanChar()
		emit(Char)
	case c == '`':
		lx.advance()
		for lx.pos < len(lx.src) && lx.src[lx.pos] != '`' && lx.src[lx.pos] != '\n' {
			lx.advance()
		}
		closed = lx.peek(0) == '`'
		if closed {
			lx.advance()
		}
		emit(Identifier)
	case c >= '0' && c <= '9':
		lx.scanNumber()
		emit(Number)
	default:
		r, _ := utf8.DecodeRune(lx.src[lx.pos:])
		if r == '_' || unicode.IsLetter(r) {
			for lx.pos < len(lx.src) {
				r, _ := utf8.DecodeRune(lx.src[lx.pos:])
				if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
					break
				}
				lx.advance()
			}
			if keywords[string(lx.src[start:lx.pos])] {
				emit(Keyword)
			} else {
				emit(Identifier)
			}
			return
		}
		lx.scanOperator()
		emit(Punct)
	}
}

func (lx *lexer) scanBlockComment() bool {
	lx.advanceN(2)
	depth := 1
	for lx.pos < len(lx.src) && depth > 0 {
		switch {
		case lx.hasPrefix("/*"):
			lx.advanceN(2)
			depth++
		case lx.hasPrefix("*/"):
			lx.advanceN(2)
			depth--
		default:
			lx.advance()
		}
	}
	return depth == 0
}

// scanString consumes a quoted string and reports whether it was closed
func (lx *lexer) scanString() bool {
	lx.advance()
	for lx.pos < len(lx.src) {
		switch c := lx.src[lx.pos]; {
		case c == '\\':
			lx.advanceN(2)
		case c == '"':
			lx.advance()
			return true
		case c == '\n' || c == '\r':
			return false
		case lx.hasPrefix("${"):
			lx.scanTemplate()
		default:
			lx.advance()
		}
	}
	return false
}

func (lx *lexer) scanRawString() bool {
	lx.advanceN(3)
	for lx.pos < len(lx.src) {
		if lx.hasPrefix(`"""`) {
			lx.advanceN(3)
			// """" closes with a literal quote before the delimiter
			for lx.peek(0) == '"' {
				lx.advance()
			}
			return true
		}
		if lx.hasPrefix("${") {
			lx.scanTemplate()
			continue
		}
		lx.advance()
	}
	return false
}

// scanTemplate consumes a ${...} expression including nested braces and strings
func (lx *lexer) scanTemplate() {
	lx.advanceN(2)
	depth := 1
	for lx.pos < len(lx.src) && depth > 0 {
		switch {
		case lx.hasPrefix(`"""`):
			lx.scanRawString()
		case lx.src[lx.pos] == '"':
			lx.scanString()
		case lx.src[lx.pos] == '\'':
			lx.scanChar()
		case lx.src[lx.pos] == '{':
			depth++
			lx.advance()
		case lx.src[lx.pos] == '}':
			depth--
			lx.advance()
		default:
			lx.advance()
		}
	}
}

func (lx *lexer) scanChar() bool {
	lx.advance()
	if lx.peek(0) == '\\' {
		lx.advanceN(2)
	}
	for lx.pos < len(lx.src) && lx.src[lx.pos] != '\'' && lx.src[lx.pos] != '\n' {
		lx.advance()
	}
	if lx.peek(0) == '\'' {
		lx.advance()
		return true
	}
	return false
}

func (lx *lexer) scanNumber() {
	seenDot := false
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
			lx.advance()
		case c == '.' && !seenDot && lx.peek(1) >= '0' && lx.peek(1) <= '9':
			seenDot = true
			lx.advance()
		default:
			return
		}
	}
}

func (lx *lexer) scanOperator() {
	for _, op := range threeCharOps {
		if lx.hasPrefix(op) {
			lx.advanceN(3)
			return
		}
	}
	for _, op := range twoCharOps {
		if lx.hasPrefix(op) {
			lx.advanceN(2)
			return
		}
	}
	lx.advance()
}

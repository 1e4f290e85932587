package kotlin

// NextSignificant returns the index of the first token after i that is not
// whitespace, a newline or a comment. The EOF token is significant.
func NextSignificant(tokens []Token, i int) int {
	for j := i + 1; j < len(tokens); j++ {
		if !tokens[j].IsTrivia() {
			return j
		}
	}
	return len(tokens) - 1
}

// PrevSignificant returns the index of the last significant token before i, or -1
func PrevSignificant(tokens []Token, i int) int {
	for j := i - 1; j >= 0; j-- {
		if !tokens[j].IsTrivia() {
			return j
		}
	}
	return -1
}

// NextOnLine returns the index of the first token after i that is neither
// whitespace nor a comment. A Newline or EOF token ends the search.
func NextOnLine(tokens []Token, i int) int {
	for j := i + 1; j < len(tokens); j++ {
		switch tokens[j].Kind {
		case Whitespace, LineComment:
		case BlockComment:
			if containsNewline(tokens[j].Text) {
				return j
			}
		default:
			return j
		}
	}
	return len(tokens) - 1
}

// FirstOnLine reports whether token i is the first non-whitespace token of its line
func FirstOnLine(tokens []Token, i int) bool {
	for j := i - 1; j >= 0; j-- {
		switch tokens[j].Kind {
		case Whitespace:
		case Newline:
			return true
		default:
			return false
		}
	}
	return true
}

// DeclarationKeyword scans back from an opening brace at index i to the start of
// its declaration header and returns the declaring keyword found there: one of
// "class", "object", "interface", "fun", or "" for blocks that are not declarations.
// "enum" is returned for enum class bodies.
func DeclarationKeyword(tokens []Token, i int) string {
	keyword, _ := Declaration(tokens, i)
	return keyword
}

// Declaration is DeclarationKeyword that also returns the index of the keyword
// token, or -1 when the block is not a declaration body.
func Declaration(tokens []Token, i int) (string, int) {
	depth := 0
	for j := i - 1; j >= 0; j-- {
		t := tokens[j]
		if t.Kind != Punct && t.Kind != Keyword {
			continue
		}
		switch t.Text {
		case ")", "]":
			depth++
			continue
		case "(", "[":
			if depth == 0 {
				return "", -1
			}
			depth--
			continue
		}
		if depth > 0 {
			continue
		}
		switch t.Text {
		case "{", "}", ";", "=", "->":
			return "", -1
		case "fun":
			return "fun", j
		case "class":
			if p := PrevSignificant(tokens, j); p >= 0 && tokens[p].Is("enum") {
				return "enum", j
			}
			return "class", j
		case "object", "interface":
			return t.Text, j
		}
	}
	return "", -1
}

func containsNewline(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' || s[i] == '\r' {
			return true
		}
	}
	return false
}

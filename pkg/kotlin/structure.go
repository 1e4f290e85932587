package kotlin

var closers = map[string]string{")": "(", "]": "[", "}": "{"}

// StructuralError returns the first token that breaks the nesting of a token
// stream: an unterminated literal or comment, a closing delimiter without its
// opener, or an opener left unclosed at EOF. It returns nil for a sound stream.
func StructuralError(tokens []Token) *Token {
	var open []int
	for i, tok := range tokens {
		if tok.Unterminated {
			return &tokens[i]
		}
		if tok.Kind != Punct {
			continue
		}
		switch tok.Text {
		case "(", "[", "{":
			open = append(open, i)
		case ")", "]", "}":
			if len(open) == 0 || tokens[open[len(open)-1]].Text != closers[tok.Text] {
				return &tokens[i]
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return &tokens[open[len(open)-1]]
	}
	return nil
}

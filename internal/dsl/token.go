package dsl

import "strings"

// Tokenize splits a single statement into an ordered sequence of raw tokens.
// The statement may arrive with or without its outer parentheses; if present
// they are stripped first. A space is a token boundary only at parenthesis
// depth zero and outside quotes. Quoted runs (delimited by matching " or ')
// are preserved verbatim, delimiters included, and nested (...) groups stay
// whole inside a single token.
func Tokenize(statement string) []string {
	s := StripOuterParens(strings.TrimSpace(statement))

	var tokens []string
	var cur strings.Builder
	depth := 0
	inQuote := false
	var quoteCh byte

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuote:
			cur.WriteByte(ch)
			if ch == quoteCh {
				inQuote = false
			}
		case ch == '"' || ch == '\'':
			inQuote = true
			quoteCh = ch
			cur.WriteByte(ch)
		case ch == '(':
			depth++
			cur.WriteByte(ch)
		case ch == ')':
			depth--
			cur.WriteByte(ch)
		case ch == ' ' || ch == '\t':
			if depth == 0 {
				flush()
			} else {
				cur.WriteByte(ch)
			}
		default:
			cur.WriteByte(ch)
		}
	}
	flush()

	return tokens
}

// StripOuterParens removes the outermost parenthesis pair from s, but only
// when the opening paren at position 0 actually closes at the final position.
// Anything else (no parens, partial parens, two sibling groups) is returned
// unchanged.
func StripOuterParens(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}

	depth := 0
	inQuote := false
	var quoteCh byte
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuote:
			if ch == quoteCh {
				inQuote = false
			}
		case ch == '"' || ch == '\'':
			inQuote = true
			quoteCh = ch
		case ch == '(':
			depth++
		case ch == ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				// The first paren closed early; the trailing ')' belongs
				// to a different group.
				return s
			}
		}
	}

	return strings.TrimSpace(s[1 : len(s)-1])
}

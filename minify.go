package gql

import "strings"

// MinifyQuery strips comments and collapses insignificant whitespace in a
// GraphQL document. String literals, including block strings, are copied
// byte for byte.
func MinifyQuery(query string) string {
	if query == "" {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query))

	var last byte
	pendingSpace := false
	write := func(s string) {
		if pendingSpace && last != 0 && !isTightPunct(last) && !isTightPunct(s[0]) {
			sb.WriteByte(' ')
		}
		pendingSpace = false
		sb.WriteString(s)
		last = s[len(s)-1]
	}

	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '#':
			for i < len(query) && query[i] != '\n' {
				i++
			}
			pendingSpace = true
		case c == '"' || c == '\'':
			end := scanStringLiteral(query, i)
			write(query[i:end])
			i = end - 1
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			pendingSpace = true
		default:
			write(query[i : i+1])
		}
	}

	return sb.String()
}

func isTightPunct(c byte) bool {
	return c == '{' || c == '}' || c == '(' || c == ')'
}

// scanStringLiteral returns the index just past the literal starting at start.
// Unterminated literals run to the end of the input.
func scanStringLiteral(s string, start int) int {
	quote := s[start]
	if quote == '"' && strings.HasPrefix(s[start:], `"""`) {
		for j := start + 3; j < len(s); j++ {
			if s[j] == '\\' && strings.HasPrefix(s[j+1:], `"""`) {
				j += 3
				continue
			}
			if strings.HasPrefix(s[j:], `"""`) {
				return j + 3
			}
		}
		return len(s)
	}

	for j := start + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}
	return len(s)
}

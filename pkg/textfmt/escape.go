package textfmt

import "strings"

// ConvertEscapes translates a pattern written with the doubled-brace
// convention into placeholder grammar.
//
// In the doubled-brace convention a run of N left braces stands for N/2
// literal braces, followed by one placeholder-opening brace when N is odd,
// and single quotes need no escaping. In placeholder grammar literal braces
// must be quoted and quotes doubled, so "{{{0}" becomes "'{'{0}" and the
// quote in "it's" is written twice.
//
// When nothing needs converting the input string is returned as is, without
// allocating.
func ConvertEscapes(pattern string) string {
	i := firstEscape(pattern)
	if i < 0 {
		return pattern
	}

	var sb strings.Builder
	sb.Grow(len(pattern) + 8)
	sb.WriteString(pattern[:i])

	for ; i < len(pattern); i++ {
		switch ch := pattern[i]; ch {
		case '\'':
			sb.WriteString("''")
		case '{':
			j := i + 1
			for j < len(pattern) && pattern[j] == '{' {
				j++
			}
			run := j - i
			if escaped := run / 2; escaped > 0 {
				sb.WriteByte('\'')
				sb.WriteString(strings.Repeat("{", escaped))
				sb.WriteByte('\'')
			}
			if run%2 != 0 {
				sb.WriteByte('{')
			}
			i = j - 1
		default:
			sb.WriteByte(ch)
		}
	}

	return sb.String()
}

// firstEscape returns the offset of the first quote or doubled brace, or -1.
func firstEscape(pattern string) int {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\'':
			return i
		case '{':
			if i+1 < len(pattern) && pattern[i+1] == '{' {
				return i
			}
		}
	}
	return -1
}

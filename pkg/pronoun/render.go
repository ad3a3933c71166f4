package pronoun

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Participant is someone referred to by a message.
type Participant struct {
	Name  string
	Table *Table
}

// Render replaces "@N<tag>" markers, where N is a participant number from
// 1 to 9, with the participant's substitution for the longest tag that the
// table knows. "@@" is a literal "@". Markers naming a missing participant
// or an unknown tag are left as written. A tag spelled with a leading
// capital capitalizes the replacement.
//
//	The goblin@1s slash@1$$ @2me with @1my blade@1s!
func Render(text string, participants ...Participant) string {
	if strings.IndexByte(text, '@') < 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))

	for i := 0; i < len(text); {
		at := strings.IndexByte(text[i:], '@')
		if at < 0 {
			sb.WriteString(text[i:])
			break
		}
		sb.WriteString(text[i : i+at])
		i += at

		if i+1 < len(text) && text[i+1] == '@' {
			sb.WriteByte('@')
			i += 2
			continue
		}

		n, ok := substitute(&sb, text[i:], participants)
		if !ok {
			sb.WriteByte('@')
			i++
			continue
		}
		i += n
	}

	return sb.String()
}

// substitute handles a marker at the start of s and reports how many bytes
// it consumed.
func substitute(sb *strings.Builder, s string, participants []Participant) (int, bool) {
	if len(s) < 3 || s[1] < '1' || s[1] > '9' {
		return 0, false
	}
	idx := int(s[1] - '1')
	if idx >= len(participants) || participants[idx].Table == nil {
		return 0, false
	}
	p := participants[idx]

	end := 2
	for end < len(s) && isTagByte(s[end]) {
		end++
	}

	for cut := end; cut > 2; cut-- {
		tag := s[2:cut]
		fn, ok := p.Table.Lookup(tag)
		if !ok {
			continue
		}
		out := fn(p.Name)
		if r, _ := utf8.DecodeRuneInString(tag); unicode.IsUpper(r) {
			out = capitalize(out)
		}
		sb.WriteString(out)
		return cut, true
	}

	return 0, false
}

func isTagByte(b byte) bool {
	return b == '_' || b == '$' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

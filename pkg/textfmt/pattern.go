package textfmt

import (
	"strconv"
	"strings"
)

type argKind uint8

const (
	kindNone argKind = iota
	kindNumber
	kindDate
	kindTime
)

type argStyle uint8

const (
	styleDefault argStyle = iota
	styleInteger
	stylePercent
	styleCurrency
	styleShort
	styleMedium
	styleLong
	styleFull
	styleCustom
)

// segment is either literal text or a single placeholder.
type segment struct {
	text  string
	index int
	kind  argKind
	style argStyle
	arg   bool

	decimal *decimalPattern
	date    datePattern
}

// parse splits a placeholder-grammar pattern into segments.
//
// Outside placeholders a doubled quote is a literal quote and a single quote
// toggles quoting, so braces between quotes are literal. A placeholder is
// {index[,type[,style]]}; nested braces inside the style are balanced.
func parse(pattern string) ([]segment, error) {
	var (
		segs    []segment
		parts   [4]strings.Builder
		part    int
		inQuote bool
		depth   int
		start   int
	)

	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]
		if part == 0 {
			switch {
			case ch == '\'':
				if i+1 < len(pattern) && pattern[i+1] == '\'' {
					parts[0].WriteByte('\'')
					i++
				} else {
					inQuote = !inQuote
				}
			case ch == '{' && !inQuote:
				if parts[0].Len() > 0 {
					segs = append(segs, segment{text: parts[0].String()})
					parts[0].Reset()
				}
				part = 1
				start = i
			default:
				parts[0].WriteByte(ch)
			}
			continue
		}

		if inQuote {
			parts[part].WriteByte(ch)
			if ch == '\'' {
				inQuote = false
			}
			continue
		}

		switch ch {
		case ',':
			if part < 3 {
				part++
			} else {
				parts[part].WriteByte(ch)
			}
		case '{':
			depth++
			parts[part].WriteByte(ch)
		case '}':
			if depth > 0 {
				depth--
				parts[part].WriteByte(ch)
				continue
			}
			seg, err := placeholder(pattern, start, parts[1].String(), parts[2].String(), parts[3].String())
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
			for j := 1; j < len(parts); j++ {
				parts[j].Reset()
			}
			part = 0
		case '\'':
			inQuote = true
			parts[part].WriteByte(ch)
		default:
			parts[part].WriteByte(ch)
		}
	}

	if part != 0 {
		return nil, &TemplateError{Pattern: pattern, Pos: start, Reason: "unmatched braces"}
	}
	if parts[0].Len() > 0 {
		segs = append(segs, segment{text: parts[0].String()})
	}

	return segs, nil
}

func placeholder(pattern string, pos int, index, kind, style string) (segment, error) {
	fail := func(reason string) (segment, error) {
		return segment{}, &TemplateError{Pattern: pattern, Pos: pos, Reason: reason}
	}

	n, err := strconv.Atoi(strings.TrimSpace(index))
	if err != nil || n < 0 {
		return fail("argument index " + strconv.Quote(strings.TrimSpace(index)) + " is not a non-negative integer")
	}

	seg := segment{arg: true, index: n}
	raw := strings.TrimSpace(style)
	style = strings.ToLower(raw)

	switch k := strings.ToLower(strings.TrimSpace(kind)); k {
	case "":
		if style != "" {
			return fail("style without format type")
		}
	case "number":
		seg.kind = kindNumber
		switch style {
		case "":
		case "integer":
			seg.style = styleInteger
		case "percent":
			seg.style = stylePercent
		case "currency":
			seg.style = styleCurrency
		default:
			dp, err := compileDecimal(raw)
			if err != nil {
				return fail("number style " + strconv.Quote(raw) + ": " + err.Error())
			}
			seg.style, seg.decimal = styleCustom, dp
		}
	case "date", "time":
		seg.kind = kindDate
		if k == "time" {
			seg.kind = kindTime
		}
		switch style {
		case "", "short":
			seg.style = styleShort
		case "medium":
			seg.style = styleMedium
		case "long":
			seg.style = styleLong
		case "full":
			seg.style = styleFull
		default:
			dp, err := compileDate(raw)
			if err != nil {
				return fail(k + " style " + strconv.Quote(raw) + ": " + err.Error())
			}
			seg.style, seg.date = styleCustom, dp
		}
	case "choice":
		return fail("choice format is not supported")
	default:
		return fail("unknown format type " + strconv.Quote(k))
	}

	return seg, nil
}

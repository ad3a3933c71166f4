package textfmt

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	errNoDigits      = errors.New("decimal pattern has no digits")
	errBadFraction   = errors.New("decimal pattern has more than one decimal point")
	errUnclosedQuote = errors.New("unclosed quote")
)

// decimalPattern is a custom number style such as "#,##0.00".
type decimalPattern struct {
	prefix, suffix string
	minInt         int
	minFrac        int
	maxFrac        int
	grouping       bool
	multiplier     float64
}

// compileDecimal reads the positive subpattern of a decimal pattern.
// Quoted text in the prefix or suffix is literal and a doubled quote is a
// quote; an unquoted '%' or '‰' there scales the value by 100 or 1000.
func compileDecimal(pattern string) (*decimalPattern, error) {
	dp := &decimalPattern{multiplier: 1}

	var (
		prefix, body, suffix strings.Builder
		inQuote              bool
		inBody, afterBody    bool
	)
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\'' {
			if i+1 >= len(runes) || runes[i+1] != '\'' {
				inQuote = !inQuote
				continue
			}
			i++
		} else if !inQuote {
			if r == ';' {
				break
			}
			if strings.ContainsRune("#0,.", r) && !afterBody {
				inBody = true
				body.WriteRune(r)
				continue
			}
			switch r {
			case '%':
				dp.multiplier = 100
			case '‰':
				dp.multiplier = 1000
			}
		}
		if inBody {
			afterBody = true
		}
		if afterBody {
			suffix.WriteRune(r)
		} else {
			prefix.WriteRune(r)
		}
	}
	if inQuote {
		return nil, errUnclosedQuote
	}

	intPart, fracPart, hasPoint := strings.Cut(body.String(), ".")
	if strings.Contains(fracPart, ".") {
		return nil, errBadFraction
	}
	if !strings.ContainsAny(intPart+fracPart, "#0") {
		return nil, errNoDigits
	}
	if hasPoint {
		dp.minFrac = strings.Count(fracPart, "0")
		dp.maxFrac = dp.minFrac + strings.Count(fracPart, "#")
	}
	dp.minInt = strings.Count(intPart, "0")
	dp.grouping = strings.Contains(intPart, ",")
	dp.prefix = prefix.String()
	dp.suffix = suffix.String()

	return dp, nil
}

func (dp *decimalPattern) format(p *message.Printer, symbol string, arg any) string {
	opts := []number.Option{
		number.MinIntegerDigits(max(dp.minInt, 1)),
		number.MinFractionDigits(dp.minFrac),
		number.MaxFractionDigits(dp.maxFrac),
	}
	if !dp.grouping {
		opts = append(opts, number.NoSeparator())
	}

	var v any = arg
	if dp.multiplier != 1 {
		v = toFloat(arg) * dp.multiplier
	}

	num := p.Sprintf("%v", number.Decimal(v, opts...))
	return strings.ReplaceAll(dp.prefix, "¤", symbol) + num + strings.ReplaceAll(dp.suffix, "¤", symbol)
}

// dateElem is one piece of a compiled date pattern: either literal text or
// a Go layout element rendered on its own.
type dateElem struct {
	text   string
	layout string
}

type datePattern []dateElem

// compileDate translates a date pattern such as "yyyy-MM-dd HH:mm" into Go
// layout elements. Letters are pattern fields and must be known; quoted text
// and every other rune are literal.
func compileDate(pattern string) (datePattern, error) {
	var (
		dp      datePattern
		lit     strings.Builder
		inQuote bool
	)
	flush := func() {
		if lit.Len() > 0 {
			dp = append(dp, dateElem{text: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'':
			if i+1 < len(runes) && runes[i+1] == '\'' {
				lit.WriteRune('\'')
				i++
				continue
			}
			inQuote = !inQuote
		case inQuote || !isASCIILetter(r):
			lit.WriteRune(r)
		default:
			n := 1
			for i+n < len(runes) && runes[i+n] == r {
				n++
			}
			layout, ok := dateField(r, n)
			if !ok {
				return nil, errors.New("illegal date pattern character " + strconv.QuoteRune(r))
			}
			flush()
			dp = append(dp, dateElem{layout: layout})
			i += n - 1
		}
	}
	if inQuote {
		return nil, errUnclosedQuote
	}
	flush()

	return dp, nil
}

func (dp datePattern) format(t time.Time) string {
	var sb strings.Builder
	for _, e := range dp {
		if e.layout == "" {
			sb.WriteString(e.text)
			continue
		}
		s := t.Format(e.layout)
		if e.layout[0] == '.' {
			s = s[1:]
		}
		sb.WriteString(s)
	}
	return sb.String()
}

// dateField maps a run of n identical pattern letters to a Go layout element.
func dateField(r rune, n int) (string, bool) {
	switch r {
	case 'y', 'Y', 'u':
		if n == 2 {
			return "06", true
		}
		return "2006", true
	case 'M', 'L':
		switch n {
		case 1:
			return "1", true
		case 2:
			return "01", true
		case 3:
			return "Jan", true
		}
		return "January", true
	case 'd':
		if n == 1 {
			return "2", true
		}
		return "02", true
	case 'D':
		return "002", true
	case 'E':
		if n >= 4 {
			return "Monday", true
		}
		return "Mon", true
	case 'a':
		return "PM", true
	case 'H', 'k':
		return "15", true
	case 'h', 'K':
		if n == 1 {
			return "3", true
		}
		return "03", true
	case 'm':
		if n == 1 {
			return "4", true
		}
		return "04", true
	case 's':
		if n == 1 {
			return "5", true
		}
		return "05", true
	case 'S':
		return "." + strings.Repeat("0", min(n, 9)), true
	case 'z':
		return "MST", true
	case 'Z':
		return "-0700", true
	case 'X':
		if n >= 3 {
			return "Z07:00", true
		}
		return "Z0700", true
	}
	return "", false
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

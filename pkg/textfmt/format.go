package textfmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders patterns for one locale.
// It holds no mutable state and is safe for concurrent use.
type Formatter struct {
	locale *LocaleFormat
	tag    language.Tag
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLocaleFormat overrides the currency and calendar conventions that
// would otherwise be picked from the tag.
func WithLocaleFormat(lf *LocaleFormat) Option {
	return func(f *Formatter) {
		if lf != nil {
			f.locale = lf
		}
	}
}

// New returns a Formatter for tag.
func New(tag language.Tag, opts ...Option) *Formatter {
	f := &Formatter{tag: tag}
	for _, opt := range opts {
		opt(f)
	}
	if f.locale == nil {
		f.locale = FormatFor(tag)
	}
	return f
}

// Tag returns the locale the formatter renders for.
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// LocaleFormat returns the currency and calendar conventions in use.
func (f *Formatter) LocaleFormat() *LocaleFormat {
	return f.locale
}

// Format converts pattern from the doubled-brace convention and renders it
// with args. A pattern without braces or quotes is returned unchanged.
func (f *Formatter) Format(pattern string, args ...any) (string, error) {
	if !strings.ContainsAny(pattern, "{'") {
		return pattern, nil
	}
	return f.Apply(ConvertEscapes(pattern), args...)
}

// Apply renders a pattern that is already in placeholder grammar.
func (f *Formatter) Apply(pattern string, args ...any) (string, error) {
	segs, err := parse(pattern)
	if err != nil {
		return "", err
	}

	var (
		sb      strings.Builder
		printer *message.Printer
	)
	for _, seg := range segs {
		if !seg.arg {
			sb.WriteString(seg.text)
			continue
		}
		if seg.index >= len(args) {
			sb.WriteByte('{')
			sb.WriteString(strconv.Itoa(seg.index))
			sb.WriteByte('}')
			continue
		}
		if printer == nil {
			printer = message.NewPrinter(f.tag)
		}
		s, err := f.render(printer, seg, args[seg.index])
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}

	return sb.String(), nil
}

func (f *Formatter) render(p *message.Printer, seg segment, arg any) (string, error) {
	if arg == nil {
		return "null", nil
	}

	switch seg.kind {
	case kindNumber:
		if !isNumber(arg) {
			return "", invalidArgument(seg, arg, "number")
		}
		switch seg.style {
		case styleInteger:
			return p.Sprintf("%v", number.Decimal(arg, number.MaxFractionDigits(0))), nil
		case stylePercent:
			return p.Sprintf("%v", number.Percent(arg)), nil
		case styleCurrency:
			return f.locale.FormatCurrency(toFloat(arg)), nil
		case styleCustom:
			return seg.decimal.format(p, f.locale.currencySymbol, arg), nil
		default:
			return p.Sprintf("%v", number.Decimal(arg)), nil
		}

	case kindDate, kindTime:
		t, ok := asTime(arg)
		if !ok {
			return "", invalidArgument(seg, arg, "time.Time")
		}
		long := seg.style == styleLong || seg.style == styleFull
		switch {
		case seg.style == styleCustom:
			return seg.date.format(t), nil
		case seg.kind == kindDate && long:
			return f.locale.FormatLongDate(t), nil
		case seg.kind == kindDate:
			return f.locale.FormatDate(t), nil
		case long:
			return f.locale.FormatLongTime(t), nil
		default:
			return f.locale.FormatTime(t), nil
		}
	}

	switch v := arg.(type) {
	case string:
		return v, nil
	case time.Time, *time.Time:
		t, _ := asTime(v)
		return f.locale.FormatDateTime(t), nil
	}
	if isNumber(arg) {
		return p.Sprintf("%v", number.Decimal(arg)), nil
	}
	return fmt.Sprint(arg), nil
}

func invalidArgument(seg segment, arg any, want string) error {
	return fmt.Errorf("%w: argument %d is %T, want %s", ErrInvalidArgument, seg.index, arg, want)
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
	return time.Time{}, false
}

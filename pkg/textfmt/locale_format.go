package textfmt

import (
	"strconv"
	"strings"
	"time"
)

// Placement of the currency symbol relative to the amount.
const (
	SymbolBefore = "before"
	SymbolAfter  = "after"
)

// LocaleFormat holds the currency and calendar conventions of one locale.
// Plain numbers are rendered through golang.org/x/text and do not use it.
// It is immutable after creation and safe for concurrent use.
type LocaleFormat struct {
	decimalSeparator  string
	thousandSeparator string
	currencySymbol    string
	currencyPosition  string
	dateFormat        string
	longDateFormat    string
	timeFormat        string
	longTimeFormat    string
	dateTimeFormat    string
}

// LocaleFormatOption configures a LocaleFormat during construction.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat creates a LocaleFormat. Without options it formats the
// way US English does.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		decimalSeparator:  ".",
		thousandSeparator: ",",
		currencySymbol:    "$",
		currencyPosition:  SymbolBefore,
		dateFormat:        "01/02/2006",
		longDateFormat:    "January 2, 2006",
		timeFormat:        "3:04 PM",
		longTimeFormat:    "3:04:05 PM MST",
		dateTimeFormat:    "01/02/2006 3:04 PM",
	}

	for _, opt := range opts {
		opt(lf)
	}

	return lf
}

// WithSeparators sets the decimal and grouping separators used for currency.
func WithSeparators(decimal, thousand string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.decimalSeparator = decimal
		lf.thousandSeparator = thousand
	}
}

// WithCurrency sets the currency symbol and where it goes.
// An unknown position leaves the previous one in place.
func WithCurrency(symbol, position string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.currencySymbol = symbol
		if position == SymbolBefore || position == SymbolAfter {
			lf.currencyPosition = position
		}
	}
}

// WithDateFormats sets the short and long date layouts.
func WithDateFormats(short, long string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateFormat = short
		lf.longDateFormat = long
	}
}

// WithTimeFormats sets the short and long time layouts.
func WithTimeFormats(short, long string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.timeFormat = short
		lf.longTimeFormat = long
	}
}

// WithDateTimeFormat sets the combined layout used when a time value is
// passed to a placeholder without a format type.
func WithDateTimeFormat(layout string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateTimeFormat = layout
	}
}

// FormatCurrency renders an amount with two fraction digits and the
// locale's symbol.
func (lf *LocaleFormat) FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	cents := int64(amount*100 + 0.5)
	num := lf.group(cents/100) + lf.decimalSeparator + leftPad2(cents%100)

	var result string
	switch {
	case lf.currencyPosition == SymbolAfter:
		result = num + " " + lf.currencySymbol
	case tightSymbol(lf.currencySymbol):
		result = lf.currencySymbol + num
	default:
		result = lf.currencySymbol + " " + num
	}

	if negative {
		return "-" + result
	}
	return result
}

// FormatDate renders t with the short date layout.
func (lf *LocaleFormat) FormatDate(t time.Time) string {
	return t.Format(lf.dateFormat)
}

// FormatLongDate renders t with the long date layout.
func (lf *LocaleFormat) FormatLongDate(t time.Time) string {
	return t.Format(lf.longDateFormat)
}

// FormatTime renders t with the short time layout.
func (lf *LocaleFormat) FormatTime(t time.Time) string {
	return t.Format(lf.timeFormat)
}

// FormatLongTime renders t with the long time layout.
func (lf *LocaleFormat) FormatLongTime(t time.Time) string {
	return t.Format(lf.longTimeFormat)
}

// FormatDateTime renders t with the combined layout.
func (lf *LocaleFormat) FormatDateTime(t time.Time) string {
	return t.Format(lf.dateTimeFormat)
}

func (lf *LocaleFormat) group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var sb strings.Builder
	head := len(s) % 3
	if head > 0 {
		sb.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(lf.thousandSeparator)
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

func leftPad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// tightSymbol reports whether the symbol is written without a space before
// the amount.
func tightSymbol(symbol string) bool {
	switch symbol {
	case "¥", "£", "₩":
		return true
	}
	return strings.HasSuffix(symbol, "$")
}

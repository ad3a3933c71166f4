package i18n

import (
	"errors"
	"time"
)

// Translator is a convenience wrapper around a Bundle for templates and
// handlers: lookups never fail, so results can be written straight into
// output.
type Translator struct {
	bundle *Bundle
}

// NewTranslator wraps b. It panics if b is nil.
func NewTranslator(b *Bundle) *Translator {
	if b == nil {
		panic("i18n: bundle is not provided")
	}
	return &Translator{bundle: b}
}

// T formats the value of key with args. An absent key yields the
// "???key???" sentinel regardless of the missing key policy, and a value
// that is not a valid template is returned unformatted.
func (t *Translator) T(key string, args ...any) string {
	s, err := t.bundle.Format(key, args...)
	if err == nil {
		return s
	}
	if errors.Is(err, ErrMissingKey) {
		return Sentinel(key)
	}
	if v, ok := t.bundle.Lookup(key); ok {
		return v
	}
	return Sentinel(key)
}

// Has reports whether any catalog in the chain defines key.
func (t *Translator) Has(key string) bool {
	_, ok := t.bundle.Lookup(key)
	return ok
}

// Locale returns the locale of the wrapped bundle.
func (t *Translator) Locale() LocaleKey {
	return t.bundle.Locale()
}

// Bundle returns the wrapped bundle.
func (t *Translator) Bundle() *Bundle {
	return t.bundle
}

// FormatCurrency formats an amount with the bundle locale's currency.
func (t *Translator) FormatCurrency(amount float64) string {
	return t.bundle.formatter.LocaleFormat().FormatCurrency(amount)
}

// FormatDate formats a date with the bundle locale's short layout.
func (t *Translator) FormatDate(date time.Time) string {
	return t.bundle.formatter.LocaleFormat().FormatDate(date)
}

// FormatTime formats a time with the bundle locale's short layout.
func (t *Translator) FormatTime(tm time.Time) string {
	return t.bundle.formatter.LocaleFormat().FormatTime(tm)
}

// FormatDateTime formats a datetime with the bundle locale's layout.
func (t *Translator) FormatDateTime(datetime time.Time) string {
	return t.bundle.formatter.LocaleFormat().FormatDateTime(datetime)
}

package i18n

import (
	"errors"
	"fmt"
)

var (
	ErrMissingBundle   = errors.New("i18n: can't find bundle")
	ErrMissingKey      = errors.New("i18n: missing resource key")
	ErrCatalogNotFound = errors.New("i18n: catalog not found")
	ErrInvalidLocale   = errors.New("i18n: invalid locale")
	ErrNilLoader       = errors.New("i18n: loader cannot be nil")
	ErrInvalidFile     = errors.New("i18n: invalid translation file")
)

// MissingKeyError reports a key absent from every catalog of a chain.
type MissingKeyError struct {
	Key    string
	Locale LocaleKey
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s %q in bundle %q", ErrMissingKey, e.Key, e.Locale)
}

func (e *MissingKeyError) Unwrap() error {
	return ErrMissingKey
}

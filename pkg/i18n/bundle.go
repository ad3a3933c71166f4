package i18n

import (
	"github.com/dmitrymomot/lingua/pkg/props"
	"github.com/dmitrymomot/lingua/pkg/textfmt"
)

// Bundle is one resolved catalog linked to its less specific parent.
//
// A bundle and its ancestors are read-only after construction, except for
// Debug, so a chain may be shared between goroutines as long as Debug does
// not run concurrently with lookups.
type Bundle struct {
	catalog      *props.Catalog
	parent       *Bundle
	formatter    *textfmt.Formatter
	policy       *MissingKeyPolicy
	onMissingKey func(locale LocaleKey, key string)
	locale       LocaleKey
}

// NewBundle links catalog under parent. The parent may be nil.
// A nil catalog is treated as empty.
func NewBundle(locale LocaleKey, catalog *props.Catalog, parent *Bundle) *Bundle {
	if catalog == nil {
		catalog = props.NewCatalog()
	}
	return &Bundle{
		locale:    locale,
		catalog:   catalog,
		parent:    parent,
		formatter: textfmt.New(locale.Tag()),
	}
}

// Locale returns the locale of the catalog this bundle was built from.
// It may be less specific than the locale that was requested.
func (b *Bundle) Locale() LocaleKey {
	return b.locale
}

// Parent returns the next bundle in the fallback chain, or nil at the end.
func (b *Bundle) Parent() *Bundle {
	return b.parent
}

// Catalog returns the bundle's own catalog, without its ancestors.
func (b *Bundle) Catalog() *props.Catalog {
	return b.catalog
}

// Keys returns the keys of the bundle's own catalog in file order.
func (b *Bundle) Keys() []string {
	return b.catalog.Keys()
}

// Chain returns the locales of the bundle and its ancestors, most specific
// first.
func (b *Bundle) Chain() []LocaleKey {
	var out []LocaleKey
	for cur := b; cur != nil; cur = cur.parent {
		out = append(out, cur.locale)
	}
	return out
}

// Lookup walks the chain and reports whether key was found.
func (b *Bundle) Lookup(key string) (string, bool) {
	for cur := b; cur != nil; cur = cur.parent {
		if v, ok := cur.catalog.Get(key); ok {
			return v, true
		}
	}
	return "", false
}

// Get returns the value of key from the nearest catalog in the chain that
// defines it. When no catalog does, the missing key policy decides between
// a *MissingKeyError and the "???key???" sentinel.
func (b *Bundle) Get(key string) (string, error) {
	if v, ok := b.Lookup(key); ok {
		return v, nil
	}

	if b.onMissingKey != nil {
		b.onMissingKey(b.locale, key)
	}
	if b.missingKeyPolicy() == PolicySentinel {
		return Sentinel(key), nil
	}
	return "", &MissingKeyError{Key: key, Locale: b.locale}
}

// MustGet is like Get but panics on error.
func (b *Bundle) MustGet(key string) string {
	v, err := b.Get(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Format looks key up and renders its value with args, using the bundle's
// locale for numbers and dates.
func (b *Bundle) Format(key string, args ...any) (string, error) {
	v, err := b.Get(key)
	if err != nil {
		return "", err
	}
	return b.formatter.Format(v, args...)
}

// Formatter returns the formatter bound to the bundle's locale.
func (b *Bundle) Formatter() *textfmt.Formatter {
	return b.formatter
}

// Debug replaces every value in the chain with placeholder, which makes
// untranslated text stand out in a running application.
func (b *Bundle) Debug(placeholder string) {
	for cur := b; cur != nil; cur = cur.parent {
		cur.catalog.Debug(placeholder)
	}
}

func (b *Bundle) missingKeyPolicy() MissingKeyPolicy {
	if b.policy != nil {
		return *b.policy
	}
	return CurrentMissingKeyPolicy()
}

package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// LocaleKey identifies a locale by up to three components. An absent
// component is the empty string. Language is kept lower case and Country
// upper case; Variant is kept as given.
type LocaleKey struct {
	Language string
	Country  string
	Variant  string
}

// Root is the locale with every component absent. Its catalog is the final
// fallback of every chain.
var Root = LocaleKey{}

// NewLocaleKey builds a key, normalizing the case of language and country.
func NewLocaleKey(lang, country, variant string) LocaleKey {
	return LocaleKey{
		Language: strings.ToLower(strings.TrimSpace(lang)),
		Country:  strings.ToUpper(strings.TrimSpace(country)),
		Variant:  strings.TrimSpace(variant),
	}
}

// ParseLocaleKey accepts the underscore form used in resource names
// ("en_US_POSIX", "_DE", "fr__X") as well as BCP 47 tags ("pt-BR").
// The empty string and "root" parse to Root.
func ParseLocaleKey(s string) (LocaleKey, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "root") {
		return Root, nil
	}

	if strings.Contains(s, "-") && !strings.Contains(s, "_") {
		tag, err := language.Parse(s)
		if err != nil {
			return Root, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, s, err)
		}
		return FromTag(tag), nil
	}

	parts := strings.SplitN(s, "_", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}

	k := NewLocaleKey(parts[0], parts[1], parts[2])
	if !isAlpha(k.Language) || !isAlnum(k.Country) || strings.ContainsAny(k.Variant, " \t/\\") {
		return Root, fmt.Errorf("%w: %q", ErrInvalidLocale, s)
	}

	return k, nil
}

// MustParseLocaleKey is like ParseLocaleKey but panics on error.
func MustParseLocaleKey(s string) LocaleKey {
	k, err := ParseLocaleKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// FromTag converts a language tag. Inferred regions are not carried over:
// "de" maps to {de}, not {de DE}.
func FromTag(tag language.Tag) LocaleKey {
	var k LocaleKey

	if base, conf := tag.Base(); conf != language.No && base.String() != "und" {
		k.Language = base.String()
	}
	if region, conf := tag.Region(); conf == language.Exact {
		k.Country = region.String()
	}
	if variants := tag.Variants(); len(variants) > 0 {
		names := make([]string, len(variants))
		for i, v := range variants {
			names[i] = strings.ToUpper(v.String())
		}
		k.Variant = strings.Join(names, "_")
	}

	return k
}

// IsRoot reports whether every component is absent.
func (k LocaleKey) IsRoot() bool {
	return k == Root
}

// String returns the underscore form: "en_US", "_DE", "fr__X".
// Root renders as the empty string.
func (k LocaleKey) String() string {
	switch {
	case k.Variant != "":
		return k.Language + "_" + k.Country + "_" + k.Variant
	case k.Country != "":
		return k.Language + "_" + k.Country
	default:
		return k.Language
	}
}

// Tag converts the key to a language tag for formatting. Components that
// are not valid BCP 47 subtags are dropped; Root maps to language.Und.
func (k LocaleKey) Tag() language.Tag {
	if k.IsRoot() {
		return language.Und
	}

	lang := k.Language
	if lang == "" {
		lang = "und"
	}
	if k.Country != "" {
		if tag, err := language.Parse(lang + "-" + k.Country); err == nil {
			return tag
		}
	}
	if tag, err := language.Parse(lang); err == nil {
		return tag
	}
	return language.Und
}

// Candidates returns the lookup order for k, most specific first, always
// ending with Root:
//
//	en_US_POSIX  ->  [en_US_POSIX, en_US, en, Root]
//	en_US        ->  [en_US, en, Root]
//	fr__X        ->  [fr__X, fr, Root]
//
// A step is included only when its last component is present, so a key
// without a language, such as _DE_PREEURO, yields [_DE_PREEURO, _DE, Root]
// and a variant-only key __X yields [__X, Root].
func Candidates(k LocaleKey) []LocaleKey {
	out := make([]LocaleKey, 0, 4)

	if k.Variant != "" {
		out = append(out, k)
	}
	if k.Country != "" {
		out = append(out, LocaleKey{Language: k.Language, Country: k.Country})
	}
	if k.Language != "" {
		out = append(out, LocaleKey{Language: k.Language})
	}

	return append(out, Root)
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

func isAlnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

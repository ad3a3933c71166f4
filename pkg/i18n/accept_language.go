package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLength prevents DoS attacks through oversized Accept-Language headers.
const maxAcceptLanguageLength = 4096

// weightedLocale is a parsed Accept-Language entry.
type weightedLocale struct {
	key     LocaleKey
	quality float64
}

// PreferredLocales parses an Accept-Language header into locale keys ordered
// by descending quality. Entries that do not parse, the wildcard and
// entries with q=0 are dropped.
func PreferredLocales(header string) []LocaleKey {
	entries := parseAcceptLanguage(header)
	out := make([]LocaleKey, len(entries))
	for i, e := range entries {
		out[i] = e.key
	}
	return out
}

// ParseAcceptLanguage picks the locale to resolve for a request.
//
// With an empty available list the most preferred locale of the header is
// returned, leaving fallback to the resolver; DefaultLocale is returned when
// the header names nothing usable. Otherwise the result is always one of
// available: for each preferred locale in order, an exact match wins, then
// an available locale with the same language, preferring the one without a
// country. When nothing matches, available[0] is returned.
//
// Example header: "en-US,en;q=0.9,pl;q=0.8"
// Available: [pl, en, de]
// Returns: en
func ParseAcceptLanguage(header string, available []LocaleKey) LocaleKey {
	if key, ok := matchPreferred(header, available); ok {
		return key
	}
	if len(available) == 0 {
		return DefaultLocale()
	}
	return available[0]
}

// MatchAcceptLanguage is ParseAcceptLanguage with an explicit fallback,
// usually Resolver.DefaultLocale. When the header names nothing usable,
// fallback is returned if available is empty or lists it, and available[0]
// otherwise.
func MatchAcceptLanguage(header string, available []LocaleKey, fallback LocaleKey) LocaleKey {
	if key, ok := matchPreferred(header, available); ok {
		return key
	}
	if len(available) == 0 || slices.Contains(available, fallback) {
		return fallback
	}
	return available[0]
}

func matchPreferred(header string, available []LocaleKey) (LocaleKey, bool) {
	preferred := PreferredLocales(header)

	if len(available) == 0 {
		if len(preferred) > 0 {
			return preferred[0], true
		}
		return LocaleKey{}, false
	}

	for _, want := range preferred {
		if slices.Contains(available, want) {
			return want, true
		}
		if match, ok := sameLanguage(want, available); ok {
			return match, true
		}
	}

	return LocaleKey{}, false
}

func sameLanguage(want LocaleKey, available []LocaleKey) (LocaleKey, bool) {
	var (
		match LocaleKey
		found bool
	)
	for _, avail := range available {
		if avail.Language == "" || avail.Language != want.Language {
			continue
		}
		if avail.Country == "" && avail.Variant == "" {
			return avail, true
		}
		if !found {
			match, found = avail, true
		}
	}
	return match, found
}

// parseAcceptLanguage parses the header into locales with quality values.
func parseAcceptLanguage(header string) []weightedLocale {
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var out []weightedLocale

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		quality := 1.0
		langPart, qPart, hasQuality := strings.Cut(part, ";")
		langPart = strings.TrimSpace(langPart)

		if hasQuality {
			qPart = strings.TrimSpace(qPart)
			if strings.HasPrefix(qPart, "q=") {
				if q, err := strconv.ParseFloat(qPart[2:], 64); err == nil && q >= 0 && q <= 1 {
					quality = q
				}
			}
		}

		if langPart == "" || langPart == "*" || quality == 0 {
			continue
		}

		key, err := ParseLocaleKey(strings.ReplaceAll(langPart, "_", "-"))
		if err != nil || key.IsRoot() {
			continue
		}
		out = append(out, weightedLocale{key: key, quality: quality})
	}

	slices.SortStableFunc(out, func(a, b weightedLocale) int {
		return cmp.Compare(b.quality, a.quality)
	})

	return out
}

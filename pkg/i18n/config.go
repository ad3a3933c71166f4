package i18n

import "sync/atomic"

// MissingKeyPolicy decides what a lookup of an absent key produces.
type MissingKeyPolicy int32

const (
	// PolicyError makes lookups of absent keys fail with ErrMissingKey.
	PolicyError MissingKeyPolicy = iota
	// PolicySentinel makes lookups of absent keys return "???key???".
	PolicySentinel
)

func (p MissingKeyPolicy) String() string {
	switch p {
	case PolicyError:
		return "error"
	case PolicySentinel:
		return "sentinel"
	}
	return "unknown"
}

// ParseMissingKeyPolicy accepts "error" and "sentinel".
func ParseMissingKeyPolicy(s string) (MissingKeyPolicy, bool) {
	switch s {
	case "error":
		return PolicyError, true
	case "sentinel":
		return PolicySentinel, true
	}
	return PolicyError, false
}

// Sentinel is the value returned for an absent key under PolicySentinel.
func Sentinel(key string) string {
	return "???" + key + "???"
}

var (
	defaultLocale    atomic.Pointer[LocaleKey]
	missingKeyPolicy atomic.Int32
)

// DefaultLang is the language of the process default locale until
// SetDefaultLocale changes it.
const DefaultLang = "en"

// SetDefaultLocale sets the process-wide fallback locale used by resolvers
// created without WithDefaultLocale. It is read at resolve time.
func SetDefaultLocale(k LocaleKey) {
	defaultLocale.Store(&k)
}

// DefaultLocale returns the process-wide fallback locale.
func DefaultLocale() LocaleKey {
	if k := defaultLocale.Load(); k != nil {
		return *k
	}
	return LocaleKey{Language: DefaultLang}
}

// SetMissingKeyPolicy sets the process-wide policy used by bundles whose
// resolver was created without WithMissingKeyPolicy. It is read at lookup
// time.
func SetMissingKeyPolicy(p MissingKeyPolicy) {
	missingKeyPolicy.Store(int32(p))
}

// CurrentMissingKeyPolicy returns the process-wide missing key policy.
func CurrentMissingKeyPolicy() MissingKeyPolicy {
	return MissingKeyPolicy(missingKeyPolicy.Load())
}

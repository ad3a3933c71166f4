package pronoun

import (
	"sync"

	"github.com/dmitrymomot/lingua/pkg/i18n"
)

// Tongue groups the substitution tables of one language.
type Tongue struct {
	locale i18n.LocaleKey
	tables map[string]*Table
	order  []string
}

// NewTongue creates a tongue for locale holding tables.
func NewTongue(locale i18n.LocaleKey, tables ...*Table) *Tongue {
	t := &Tongue{locale: locale, tables: make(map[string]*Table, len(tables))}
	for _, tbl := range tables {
		t.Register(tbl)
	}
	return t
}

// English returns en_US with singular they, she, he, it, plural and second
// person tables.
func English() *Tongue {
	return NewTongue(i18n.LocaleKey{Language: "en", Country: "US"},
		TheyThem(), SheHer(), HeHim(), ItIts(), Plural(), You())
}

// Locale returns the tongue's locale.
func (t *Tongue) Locale() i18n.LocaleKey { return t.locale }

// Register adds or replaces a table under its tag.
func (t *Tongue) Register(tbl *Table) *Tongue {
	if _, ok := t.tables[tbl.Tag()]; !ok {
		t.order = append(t.order, tbl.Tag())
	}
	t.tables[tbl.Tag()] = tbl
	return t
}

// Table returns the table registered under tag.
func (t *Tongue) Table(tag string) (*Table, bool) {
	tbl, ok := t.tables[tag]
	return tbl, ok
}

// Tags lists table tags in registration order.
func (t *Tongue) Tags() []string {
	return append([]string(nil), t.order...)
}

// Registry finds tongues by locale, falling back like catalog lookup does.
type Registry struct {
	tongues map[i18n.LocaleKey]*Tongue
	mu      sync.RWMutex
}

// NewRegistry creates a registry holding tongues.
func NewRegistry(tongues ...*Tongue) *Registry {
	r := &Registry{tongues: make(map[i18n.LocaleKey]*Tongue)}
	for _, t := range tongues {
		r.Register(t)
	}
	return r
}

// Register adds or replaces the tongue for its locale.
func (r *Registry) Register(t *Tongue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tongues[t.Locale()] = t
}

// Lookup returns the tongue of the most specific candidate of key.
func (r *Registry) Lookup(key i18n.LocaleKey) (*Tongue, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range i18n.Candidates(key) {
		if t, ok := r.tongues[c]; ok {
			return t, true
		}
	}
	// en_US is registered under its region; accept a language-only match,
	// taking the smallest key so the result does not depend on map order.
	var (
		best  *Tongue
		bestK string
	)
	for k, t := range r.tongues {
		if k.Language == "" || k.Language != key.Language {
			continue
		}
		if best == nil || k.String() < bestK {
			best, bestK = t, k.String()
		}
	}
	return best, best != nil
}

var defaultRegistry = NewRegistry(English())

// Default returns the process-wide registry, preloaded with English.
func Default() *Registry { return defaultRegistry }

// Format formats key from b and renders participant markers in the result.
func Format(b *i18n.Bundle, key string, participants []Participant, args ...any) (string, error) {
	s, err := b.Format(key, args...)
	if err != nil {
		return "", err
	}
	return Render(s, participants...), nil
}

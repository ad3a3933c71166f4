package pronoun

import (
	"strings"
)

// Func rewrites the participant's name into the replacement text. Most
// entries ignore the input and return a fixed word or suffix.
type Func func(name string) string

// Literal returns a Func that always yields s.
func Literal(s string) Func {
	return func(string) string { return s }
}

// Table maps grammar tags to substitutions. Tags are matched without regard
// to case and keep their insertion order.
type Table struct {
	tag   string
	keys  []string
	funcs map[string]Func
}

// NewTable creates an empty table identified by tag, such as "t3s".
func NewTable(tag string) *Table {
	return &Table{tag: tag, funcs: make(map[string]Func)}
}

// Tag returns the table identifier.
func (t *Table) Tag() string { return t.tag }

// Set registers fn for key. Re-setting a key keeps its position.
func (t *Table) Set(key string, fn Func) *Table {
	folded := strings.ToLower(key)
	if _, ok := t.funcs[folded]; !ok {
		t.keys = append(t.keys, key)
	}
	t.funcs[folded] = fn
	return t
}

// SetLiterals registers key/value pairs. A trailing key without a value is
// ignored.
func (t *Table) SetLiterals(pairs ...string) *Table {
	for i := 1; i < len(pairs); i += 2 {
		t.Set(pairs[i-1], Literal(pairs[i]))
	}
	return t
}

// Lookup finds the substitution for key in any case.
func (t *Table) Lookup(key string) (Func, bool) {
	fn, ok := t.funcs[strings.ToLower(key)]
	return fn, ok
}

// Keys returns the tags in insertion order, as first spelled.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Len returns the number of tags.
func (t *Table) Len() int { return len(t.keys) }

func withNames(t *Table) *Table {
	return t.
		Set("name", func(s string) string { return s }).
		Set("name_s", Possessive).
		Set("direct", func(s string) string { return s })
}

// Possessive appends "'s", or only an apostrophe after a trailing s.
func Possessive(name string) string {
	switch {
	case name == "":
		return ""
	case strings.HasSuffix(name, "s"):
		return name + "'"
	default:
		return name + "'s"
	}
}

// Noun suffix tags: s (cat/cats), ss (box/boxes), sss (fl-y/ies),
// usi (cact-us/i), fves (lea-f/ves). Verb suffix tags: $ (run/runs),
// $$ (slash/slashes), $$$ (carr-y/ies).

// TheyThem is singular they, with plural verb agreement.
func TheyThem() *Table {
	return withNames(NewTable("t3s").SetLiterals(
		"i", "they", "me", "them", "my", "their", "mine", "theirs", "myself", "themself",
		"s", "", "ss", "", "sss", "y", "usi", "us", "fves", "f",
		"$", "", "$$", "", "$$$", "y",
	))
}

// SheHer is feminine third person singular.
func SheHer() *Table {
	return withNames(NewTable("f3s").SetLiterals(
		"i", "she", "me", "her", "my", "her", "mine", "hers", "myself", "herself",
		"s", "", "ss", "", "sss", "y", "usi", "us", "fves", "f",
		"$", "s", "$$", "es", "$$$", "ies",
	))
}

// HeHim is masculine third person singular.
func HeHim() *Table {
	return withNames(NewTable("m3s").SetLiterals(
		"i", "he", "me", "him", "my", "his", "mine", "his", "myself", "himself",
		"s", "", "ss", "", "sss", "y", "usi", "us", "fves", "f",
		"$", "s", "$$", "es", "$$$", "ies",
	))
}

// ItIts is neuter third person singular.
func ItIts() *Table {
	return withNames(NewTable("n3s").SetLiterals(
		"i", "it", "me", "it", "my", "its", "mine", "its", "myself", "itself",
		"s", "", "ss", "", "sss", "y", "usi", "us", "fves", "f",
		"$", "s", "$$", "es", "$$$", "ies",
	))
}

// Plural is third person plural; noun tags produce plural endings.
func Plural() *Table {
	return withNames(NewTable("t3p").SetLiterals(
		"i", "they", "me", "them", "my", "their", "mine", "theirs", "myself", "themselves",
		"s", "s", "ss", "es", "sss", "ies", "usi", "i", "fves", "ves",
		"$", "", "$$", "", "$$$", "y",
	))
}

// You is the second person, singular or plural.
func You() *Table {
	return withNames(NewTable("t2")).SetLiterals(
		"i", "you", "me", "you", "my", "your", "mine", "yours", "myself", "yourself",
		"s", "", "ss", "", "sss", "y", "usi", "us", "fves", "f",
		"$", "", "$$", "", "$$$", "y",
	)
}

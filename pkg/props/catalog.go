package props

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"
)

// Catalog is an insertion-ordered mapping from key to value.
// Setting an existing key replaces its value but keeps its position.
//
// A Catalog is not safe for concurrent mutation. Concurrent reads are fine.
type Catalog struct {
	index  map[string]int
	keys   []string
	values []string
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

// FromPairs builds a catalog from alternating key, value arguments.
// A trailing key without a value is stored with an empty value.
func FromPairs(kv ...string) *Catalog {
	c := NewCatalog()
	for i := 0; i < len(kv); i += 2 {
		var v string
		if i+1 < len(kv) {
			v = kv[i+1]
		}
		c.Set(kv[i], v)
	}
	return c
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// Get returns the value stored for key.
func (c *Catalog) Get(key string) (string, bool) {
	i, ok := c.index[key]
	if !ok {
		return "", false
	}
	return c.values[i], true
}

// Has reports whether key is present.
func (c *Catalog) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Set stores value under key.
func (c *Catalog) Set(key, value string) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[key]; ok {
		c.values[i] = value
		return
	}
	c.index[key] = len(c.keys)
	c.keys = append(c.keys, key)
	c.values = append(c.values, value)
}

// Delete removes key. Order of the remaining keys is preserved.
func (c *Catalog) Delete(key string) {
	i, ok := c.index[key]
	if !ok {
		return
	}
	c.keys = slices.Delete(c.keys, i, i+1)
	c.values = slices.Delete(c.values, i, i+1)
	delete(c.index, key)
	for j := i; j < len(c.keys); j++ {
		c.index[c.keys[j]] = j
	}
}

// Keys returns a copy of the keys in insertion order.
func (c *Catalog) Keys() []string {
	return slices.Clone(c.keys)
}

// All iterates over entries in insertion order.
func (c *Catalog) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for i, k := range c.keys {
			if !yield(k, c.values[i]) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		index:  make(map[string]int, len(c.keys)),
		keys:   slices.Clone(c.keys),
		values: slices.Clone(c.values),
	}
	for i, k := range out.keys {
		out.index[k] = i
	}
	return out
}

// Debug replaces every value with placeholder, so text that bypasses the
// catalog stands out during QA. It cannot be undone.
func (c *Catalog) Debug(placeholder string) {
	for i := range c.values {
		c.values[i] = placeholder
	}
}

// Map returns the entries as a plain map. Order is lost.
func (c *Catalog) Map() map[string]string {
	m := make(map[string]string, len(c.keys))
	for i, k := range c.keys {
		m[k] = c.values[i]
	}
	return m
}

// MarshalJSON encodes the catalog as an ordered array of [key, value] pairs.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	pairs := make([][2]string, len(c.keys))
	for i, k := range c.keys {
		pairs[i] = [2]string{k, c.values[i]}
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON decodes the representation produced by MarshalJSON.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var pairs [][2]string
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("props: decoding catalog: %w", err)
	}
	*c = Catalog{index: make(map[string]int, len(pairs))}
	for _, p := range pairs {
		c.Set(p[0], p[1])
	}
	return nil
}

package command

import (
	"maps"
	"slices"
)

// AliasTable maps every spelling of a key to the key itself.
//
// Every key maps to itself, so resolving a key is idempotent. When an alias
// is registered twice the last registration wins.
type AliasTable map[string]string

// Set maps key and every alias to key.
func (t AliasTable) Set(key string, aliases ...string) {
	t[key] = key

	for _, a := range aliases {
		if a != "" {
			t[a] = key
		}
	}
}

// Key returns the key alias resolves to.
func (t AliasTable) Key(alias string) (string, bool) {
	key, ok := t[alias]

	return key, ok
}

// Keys returns the distinct keys of t, sorted.
func (t AliasTable) Keys() []string {
	seen := map[string]bool{}

	for _, k := range t {
		seen[k] = true
	}

	return slices.Sorted(maps.Keys(seen))
}

// Aliases returns every spelling of key other than key itself, sorted.
func (t AliasTable) Aliases(key string) []string {
	var out []string

	for a, k := range t {
		if k == key && a != key {
			out = append(out, a)
		}
	}

	slices.Sort(out)

	return out
}

// Clone returns a copy of t.
func (t AliasTable) Clone() AliasTable { return maps.Clone(t) }

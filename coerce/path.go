package coerce

import "strings"

// SetPath stores v in m under the dotted path, creating intermediate maps.
// A non-map value on the way is replaced.
func SetPath(m map[string]any, path string, v any) {
	keys := strings.Split(path, ".")
	cur := m

	for _, k := range keys[:len(keys)-1] {
		next, ok := cur[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[k] = next
		}

		cur = next
	}

	cur[keys[len(keys)-1]] = v
}

// GetPath returns the value stored in m under the dotted path.
func GetPath(m map[string]any, path string) (any, bool) {
	keys := strings.Split(path, ".")
	cur := m

	for _, k := range keys[:len(keys)-1] {
		next, ok := cur[k].(map[string]any)
		if !ok {
			return nil, false
		}

		cur = next
	}

	v, ok := cur[keys[len(keys)-1]]

	return v, ok
}

package coerce

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/goccy/go-json"
)

// strategy is one step of the auto-detection cascade.
// cast reports false when the raw value only looked like a match.
type strategy struct {
	name  Type
	match func(raw string) bool
	cast  func(raw string, inside bool) (any, bool)
}

// cascade is evaluated in order; the first strategy that matches and casts
// successfully wins.
//
// It is filled by init because the object and JSON casts recurse into auto.
var cascade []strategy

func init() {
	cascade = []strategy{
		{TypeObject, isObject, castObject},
		{TypeJSON, reJSON.MatchString, castJSON},
		{TypeRegexp, reRegexp.MatchString, castRegexp},
		{TypeArray, isArray, castArray},
		{TypeDate, isDate, castDate},
		{TypeNumber, isNumber, castNumber},
		{TypeBoolean, isBoolean, castBoolean},
	}
}

var (
	reJSON   = regexp.MustCompile(`(?s)^"?\{.*\}"?$`)
	reRegexp = regexp.MustCompile(`(?s)^/(.+)/([a-z]*)$`)
	rePair   = regexp.MustCompile(`(?s)^([A-Za-z_$][\w$.-]*):(.*)$`)
)

// Auto converts raw using the auto-detection cascade without casting values
// nested in objects or JSON.
func Auto(raw string) any { return auto(raw, false) }

// Detect returns the Type auto-detection would produce for raw.
func Detect(raw string) Type {
	for _, s := range cascade {
		if !s.match(raw) {
			continue
		}

		if _, ok := s.cast(raw, false); ok {
			if s.name == TypeJSON {
				return TypeObject
			}

			return s.name
		}
	}

	return TypeString
}

func auto(raw string, inside bool) any {
	for _, s := range cascade {
		if !s.match(raw) {
			continue
		}

		if v, ok := s.cast(raw, inside); ok {
			return v
		}
	}

	return raw
}

// splitPairs splits an object literal "k:v+k:v" or "k:v|k:v".
func splitPairs(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool { return r == '+' || r == '|' })
}

func isObject(raw string) bool {
	pairs := splitPairs(raw)
	if len(pairs) == 0 {
		return false
	}

	for _, p := range pairs {
		m := rePair.FindStringSubmatch(strings.TrimSpace(p))
		if m == nil || strings.HasPrefix(m[2], "/") || strings.HasPrefix(m[2], `\`) {
			return false
		}
	}

	return true
}

func castObject(raw string, inside bool) (any, bool) {
	obj := map[string]any{}

	for _, p := range splitPairs(raw) {
		m := rePair.FindStringSubmatch(strings.TrimSpace(p))
		if m == nil {
			return nil, false
		}

		var v any = unquote(strings.TrimSpace(m[2]))
		if inside {
			v = auto(v.(string), inside)
		}

		SetPath(obj, m[1], v)
	}

	return obj, true
}

func unquote(s string) string {
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}

	return s
}

func castJSON(raw string, inside bool) (any, bool) {
	src := raw
	if strings.HasPrefix(src, `"`) && strings.HasSuffix(src, `"`) && len(src) >= 2 {
		src = src[1 : len(src)-1]
	}

	var v any
	if err := json.Unmarshal([]byte(src), &v); err != nil {
		return nil, false
	}

	if inside {
		v = castLeaves(v)
	}

	return v, true
}

// castLeaves auto-casts every string leaf of a decoded JSON value.
func castLeaves(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = castLeaves(e)
		}

		return t
	case []any:
		for i, e := range t {
			t[i] = castLeaves(e)
		}

		return t
	case string:
		return auto(t, true)
	default:
		return v
	}
}

// regexpFlags maps literal flags onto Go inline flags.
// Flags without a Go equivalent (g, u, y) are accepted and ignored.
var regexpFlags = map[rune]string{'i': "i", 'm': "m", 's': "s"}

func castRegexp(raw string, _ bool) (any, bool) {
	m := reRegexp.FindStringSubmatch(raw)
	if m == nil {
		return nil, false
	}

	var inline strings.Builder

	for _, f := range m[2] {
		if g, ok := regexpFlags[f]; ok && !strings.Contains(inline.String(), g) {
			inline.WriteString(g)
		}
	}

	pattern := m[1]
	if inline.Len() > 0 {
		pattern = "(?" + inline.String() + ")" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, false
	}

	return re, true
}

func isArray(raw string) bool {
	return strings.ContainsAny(raw, ",|") || len(strings.Fields(raw)) > 1
}

// splitArray splits on commas if present, else pipes, else whitespace.
func splitArray(raw string) []string {
	var parts []string

	switch {
	case strings.Contains(raw, ","):
		parts = strings.Split(raw, ",")
	case strings.Contains(raw, "|"):
		parts = strings.Split(raw, "|")
	default:
		parts = strings.Fields(raw)
	}

	out := parts[:0]

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

func castArray(raw string, _ bool) (any, bool) {
	parts := splitArray(raw)
	out := make([]any, len(parts))

	for i, p := range parts {
		out[i] = p
	}

	return out, true
}

func isDate(raw string) bool {
	_, ok := parseDate(raw)

	return ok
}

func castDate(raw string, _ bool) (any, bool) { return parseDate(raw) }

func isNumber(raw string) bool {
	return strings.IndexFunc(raw, unicode.IsDigit) >= 0
}

func castNumber(raw string, _ bool) (any, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil, false
	}

	return f, true
}

func isBoolean(raw string) bool { return raw == "true" || raw == "false" }

func castBoolean(raw string, _ bool) (any, bool) { return raw == "true", true }

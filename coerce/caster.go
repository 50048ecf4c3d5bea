package coerce

import (
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/origin1tech/pargv/pkg"
)

// Caster converts raw strings according to the engine's type policies.
type Caster struct {
	// IgnoreTypeErrors returns the raw value instead of failing when a value
	// does not satisfy its declared type.
	IgnoreTypeErrors bool
	// CastInside auto-casts the values nested in objects and JSON.
	CastInside bool
}

// Auto converts raw with the auto-detection cascade, honoring CastInside.
func (c Caster) Auto(raw string) any { return auto(raw, c.CastInside) }

// Cast converts raw to typ. An empty raw value yields def when def is set.
//
// Auto-detection never fails. For every other type a value that does not
// satisfy the type is an [pkg.ErrTypeMismatch], unless IgnoreTypeErrors is
// set, in which case raw is returned unchanged.
func (c Caster) Cast(key string, typ Type, raw string, def any) (any, error) {
	if raw == "" && def != nil {
		return def, nil
	}

	switch typ {
	case "", TypeAuto:
		return c.Auto(raw), nil
	case TypeString, TypeList:
		return raw, nil
	}

	cast, ok := explicit[typ]
	if !ok {
		return nil, pkg.ErrGrammar.Wrapf("unknown type %q", typ).
			With(slog.String("key", key))
	}

	if v, ok := cast(raw, c.CastInside); ok {
		return v, nil
	}

	return c.mismatch(key, typ, raw)
}

// CastList matches raw against expr and yields the first match.
// An empty raw value yields def when def is set.
func (c Caster) CastList(key string, expr *regexp.Regexp, raw string, def any) (any, error) {
	if raw == "" && def != nil {
		return def, nil
	}

	if expr == nil {
		return raw, nil
	}

	if loc := expr.FindStringIndex(raw); loc != nil {
		return raw[loc[0]:loc[1]], nil
	}

	if c.IgnoreTypeErrors {
		return raw, nil
	}

	return nil, pkg.ErrTypeMismatch.
		Wrapf("%s expected one of %s but got %q", key, expr, raw).
		With(slog.String("key", key), slog.String("list", expr.String()))
}

// Apply converts raw as described by spec.
//
// The declared type (or list) is cast first. When spec has a Func, the cast
// only runs if castBeforeCoerce is set; otherwise the Func receives raw (or
// the default when raw is empty).
func (c Caster) Apply(key string, spec Spec, raw string, castBeforeCoerce bool) (any, error) {
	var (
		v   any = raw
		err error
	)

	switch {
	case spec.List != nil:
		v, err = c.CastList(key, spec.List, raw, spec.Default)
	case spec.Func == nil || castBeforeCoerce:
		v, err = c.Cast(key, spec.Type, raw, spec.Default)
	case raw == "" && spec.Default != nil:
		v = spec.Default
	}

	if err != nil || spec.Func == nil {
		return v, err
	}

	out, err := spec.Func(v, key)
	if err != nil {
		return nil, pkg.ErrTypeMismatch.Wrapf("%s: %w", key, err).
			With(slog.String("key", key))
	}

	return out, nil
}

func (c Caster) mismatch(key string, typ Type, raw string) (any, error) {
	if c.IgnoreTypeErrors {
		return raw, nil
	}

	return nil, pkg.ErrTypeMismatch.
		Wrapf("%s expected type %s but got %s", key, typ, Detect(raw)).
		With(
			slog.String("key", key),
			slog.String("expected", string(typ)),
			slog.String("value", raw),
		)
}

// explicit holds the validating caster of every explicit type.
var explicit = map[Type]func(raw string, inside bool) (any, bool){
	TypeNumber:  castNumber,
	TypeFloat:   castNumber,
	TypeInteger: castInteger,
	TypeDate:    castExplicitDate,
	TypeArray:   castArray,
	TypeJSON:    castJSON,
	TypeObject:  castExplicitObject,
	TypeRegexp:  castExplicitRegexp,
	TypeBoolean: castExplicitBoolean,
}

func castInteger(raw string, _ bool) (any, bool) {
	raw = strings.TrimSpace(raw)
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i, true
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return nil, false
	}

	return int64(f), true
}

func castExplicitDate(raw string, _ bool) (any, bool) {
	if t, ok := parseDate(raw); ok {
		return t, true
	}

	if t, ok := parseEpoch(raw); ok {
		return t, true
	}

	return nil, false
}

func castExplicitObject(raw string, inside bool) (any, bool) {
	if isObject(raw) {
		return castObject(raw, inside)
	}

	if v, ok := castJSON(raw, inside); ok {
		if _, isMap := v.(map[string]any); isMap {
			return v, true
		}
	}

	return nil, false
}

func castExplicitRegexp(raw string, inside bool) (any, bool) {
	if reRegexp.MatchString(raw) {
		return castRegexp(raw, inside)
	}

	re, err := regexp.Compile(raw)
	if err != nil {
		return nil, false
	}

	return re, true
}

func castExplicitBoolean(raw string, _ bool) (any, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "on", "1":
		return true, true
	case "false", "no", "off", "0":
		return false, true
	default:
		return nil, false
	}
}

// Marshal renders a cast value as JSON, with regular expressions and dates
// as strings.
func Marshal(v any) ([]byte, error) { return json.Marshal(Plain(v)) }

// Plain returns v with every regular expression replaced by its source, so
// the value can be serialized.
func Plain(v any) any {
	switch t := v.(type) {
	case *regexp.Regexp:
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Plain(e)
		}

		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Plain(e)
		}

		return out
	default:
		return v
	}
}

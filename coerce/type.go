package coerce

import (
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/origin1tech/pargv/pkg"
)

// Type names a conversion target.
type Type string

const (
	TypeAuto    Type = "auto"
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeFloat   Type = "float"
	TypeDate    Type = "date"
	TypeArray   Type = "array"
	TypeJSON    Type = "json"
	TypeObject  Type = "object"
	TypeRegexp  Type = "regexp"
	TypeBoolean Type = "boolean"
	TypeList    Type = "list"
)

var types = []Type{
	TypeAuto,
	TypeString,
	TypeNumber,
	TypeInteger,
	TypeFloat,
	TypeDate,
	TypeArray,
	TypeJSON,
	TypeObject,
	TypeRegexp,
	TypeBoolean,
	TypeList,
}

// Types returns every known type name.
func Types() []Type { return slices.Clone(types) }

// ParseType returns the Type named by s, ignoring case and surrounding space.
// An empty name yields the empty Type, which casts like [TypeAuto].
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if t == "" || slices.Contains(types, t) {
		return t, nil
	}

	return "", pkg.ErrGrammar.Wrapf("unknown type %q", s).
		With(slog.String("type", s))
}

// IsAuto reports whether t selects auto-detection.
func (t Type) IsAuto() bool { return t == "" || t == TypeAuto }

// Of reports the Type of a value produced by this package.
func Of(v any) Type {
	switch v.(type) {
	case nil:
		return ""
	case string:
		return TypeString
	case float64, float32:
		return TypeNumber
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return TypeInteger
	case bool:
		return TypeBoolean
	case time.Time:
		return TypeDate
	case *regexp.Regexp:
		return TypeRegexp
	case []any, []string:
		return TypeArray
	case map[string]any:
		return TypeObject
	default:
		return TypeAuto
	}
}

// Func is a user-supplied conversion. It receives the value produced so far
// (the raw string, or its cast value when casting runs first) and the key
// being converted.
type Func func(value any, key string) (any, error)

// Spec describes how the values of one key are converted.
type Spec struct {
	Type    Type
	List    *regexp.Regexp
	Func    Func
	Default any
}

// IsZero reports whether s declares no conversion at all.
func (s Spec) IsZero() bool {
	return s.Type == "" && s.List == nil && s.Func == nil && s.Default == nil
}

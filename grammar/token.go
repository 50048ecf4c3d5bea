package grammar

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	"github.com/origin1tech/pargv/coerce"
	"github.com/origin1tech/pargv/pkg"
)

// Token describes one argument or flag declared in a usage string.
type Token struct {
	// Key is the canonical name: the bare identifier of a positional, or the
	// longest spelling of a flag in --name or -n form.
	Key string
	// Aliases are the other spellings of a flag, longest first.
	Aliases []string

	Flag     bool
	Bool     bool
	Required bool
	Variadic bool

	Type       coerce.Type
	Default    any
	HasDefault bool
	Describe   string

	// Index is the ordinal of a positional argument, -1 for flags.
	Index int
	// As is the key of the value token of a flag declared as --name <value>.
	As string
	// Token is the text the descriptor was parsed from.
	Token string
}

// Names returns Key followed by Aliases.
func (t *Token) Names() []string {
	return append([]string{t.Key}, t.Aliases...)
}

// IsToken reports whether s starts like a usage token.
func IsToken(s string) bool {
	return strings.HasPrefix(s, "-") ||
		strings.HasPrefix(s, "<") ||
		strings.HasPrefix(s, "[")
}

// IsValue reports whether s is a value token (<value> or [value]).
func IsValue(s string) bool {
	return strings.HasPrefix(s, "<") || strings.HasPrefix(s, "[")
}

// NormalizeFlag strips the dashes of name and re-adds "--" for long names or
// "-" for single characters.
func NormalizeFlag(name string) string {
	name = strings.TrimLeft(name, "-")
	if name == "" {
		return ""
	}

	if len(name) > 1 {
		return "--" + name
	}

	return "-" + name
}

// ParseToken parses a single usage token such as "<age:number>",
// "--force.f" or "[name:string:index.html]".
//
// For a flag, next is the value token that follows it in the usage string
// ("--name <value>"). The flag then takes a value typed, required and
// defaulted as declared on next, and As records the value's key.
func ParseToken(token string, next ...string) (*Token, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, token)

	if strings.HasSuffix(s, ">") || strings.HasSuffix(s, "]") {
		s = s[:len(s)-1]
	}

	part := strings.SplitN(s, ":", 3)
	key := part[0]

	if !IsToken(key) {
		return nil, errToken(token)
	}

	t := &Token{
		Flag:     strings.HasPrefix(key, "-"),
		Required: strings.HasPrefix(key, "<"),
		Index:    -1,
		Token:    token,
	}

	if t.Flag {
		names, err := flagNames(key)
		if err != nil {
			return nil, errToken(token)
		}

		t.Key = names[0]
		if len(names) > 1 {
			t.Aliases = names[1:]
		}
	} else {
		name := strings.TrimLeft(key, "<[")
		if strings.HasSuffix(name, "...") {
			t.Variadic = true
			name = strings.TrimSuffix(name, "...")
		}

		name, _, _ = strings.Cut(name, ".")
		name = strings.Trim(name, "<>[].")

		if name == "" {
			return nil, errToken(token)
		}

		t.Key = name
	}

	if len(part) > 1 {
		typ, err := coerce.ParseType(part[1])
		if err != nil {
			return nil, pkg.WrapError(err).With(slog.String("token", token))
		}

		t.Type = typ
	}

	if len(part) > 2 {
		def, err := castDefault(t.Key, t.Type, part[2])
		if err != nil {
			return nil, pkg.ErrGrammar.
				Wrapf("token %q has an invalid default: %w", token, err).
				With(slog.String("token", token))
		}

		t.Default, t.HasDefault = def, true
	}

	t.Bool = t.Flag && (t.Type.IsAuto() || t.Type == coerce.TypeBoolean)

	if !t.Flag || len(next) == 0 || next[0] == "" {
		return t, nil
	}

	v, err := ParseToken(next[0])
	if err != nil {
		return nil, err
	}

	if v.Flag {
		return nil, pkg.ErrGrammar.
			Wrapf("flag %s expects a value token, got %q", t.Key, next[0]).
			With(slog.String("token", token))
	}

	t.Bool = false
	t.Type = v.Type
	t.Required = v.Required
	t.Default, t.HasDefault = v.Default, v.HasDefault
	t.As = v.Key
	t.Token = token + " " + next[0]

	return t, nil
}

// castDefault casts a declared default. Auto-typed defaults use the
// auto-detection cascade; explicitly typed ones must satisfy their type.
func castDefault(key string, typ coerce.Type, raw string) (any, error) {
	if typ.IsAuto() {
		return coerce.Auto(raw), nil
	}

	return coerce.Caster{}.Cast(key, typ, raw, nil)
}

// flagNames normalizes, orders longest first and deduplicates the
// dot-separated names of a flag key.
func flagNames(key string) ([]string, error) {
	raw := strings.Split(key, ".")
	names := make([]string, 0, len(raw))

	for _, n := range raw {
		n = NormalizeFlag(n)
		if n == "" {
			return nil, pkg.ErrGrammar
		}

		if !slices.Contains(names, n) {
			names = append(names, n)
		}
	}

	slices.SortStableFunc(names, func(a, b string) int {
		return cmp.Compare(len(b), len(a))
	})

	return names, nil
}

func errToken(token string) error {
	return pkg.ErrGrammar.
		Wrapf("token %q missing, invalid, or has unwanted space", token).
		With(slog.String("token", token))
}

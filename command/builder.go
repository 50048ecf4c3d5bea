package command

import (
	"log/slog"
	"regexp"
	"slices"

	"github.com/origin1tech/pargv/coerce"
	"github.com/origin1tech/pargv/grammar"
	"github.com/origin1tech/pargv/pkg"
)

// TokenOption refines a token declared with [Command.Option].
type TokenOption func(*grammar.Token, *coerce.Spec)

// WithDescribe sets the description of the option.
func WithDescribe(text string) TokenOption {
	return func(t *grammar.Token, _ *coerce.Spec) { t.Describe = text }
}

// WithDefault sets the default value of the option.
func WithDefault(v any) TokenOption {
	return func(t *grammar.Token, _ *coerce.Spec) {
		t.Default, t.HasDefault = v, v != nil
	}
}

// WithType sets the type of the option.
func WithType(typ coerce.Type) TokenOption {
	return func(t *grammar.Token, _ *coerce.Spec) {
		t.Type = typ
		if t.Flag && t.As == "" {
			t.Bool = typ.IsAuto() || typ == coerce.TypeBoolean
		}
	}
}

// WithList restricts the option's values to the matches of re.
func WithList(re *regexp.Regexp) TokenOption {
	return func(_ *grammar.Token, s *coerce.Spec) { s.List = re }
}

// WithFunc converts the option's values with fn.
func WithFunc(fn coerce.Func) TokenOption {
	return func(_ *grammar.Token, s *coerce.Spec) { s.Func = fn }
}

// Option declares one more option. token is a usage token and may list
// several spellings and a value token, as in "--name, -n <value>".
func (c *Command) Option(token string, opts ...TokenOption) *Command {
	t, err := grammar.ParseOption(token)
	if err != nil {
		return c.fail(err)
	}

	var spec coerce.Spec

	for _, opt := range opts {
		opt(t, &spec)
	}

	if err := c.Expand(t); err != nil {
		return c
	}

	merged := c.coercions[t.Key]
	merged.List, merged.Func = spec.List, spec.Func
	c.coercions[t.Key] = merged

	return c
}

// Alias adds names as aliases of key. Names of a flag are normalized to
// --name or -n form.
func (c *Command) Alias(key string, names ...string) *Command {
	if key == "" || len(names) == 0 {
		return c.fail(pkg.ErrUndefinedValue.Wrapf("alias requires a key and at least one name").
			With(slog.String("command", c.name)))
	}

	key = c.resolve(key)

	for _, n := range names {
		if n == "" {
			return c.fail(pkg.ErrUndefinedValue.Wrapf("empty alias for %s", key))
		}

		if isFlagKey(key) {
			n = grammar.NormalizeFlag(n)
		}

		c.table.Set(key, n)
	}

	return c
}

// Describe sets the description of key.
func (c *Command) Describe(key, text string) *Command {
	if key == "" || text == "" {
		return c.fail(pkg.ErrUndefinedValue.Wrapf("describe requires a key and text").
			With(slog.String("command", c.name)))
	}

	c.describes[c.resolve(key)] = text

	return c
}

// Coerce sets how the values of key are converted. to is one of:
//
//   - a [coerce.Type], or a string naming one;
//   - any other string, compiled with [coerce.ParseList];
//   - a *regexp.Regexp whose first match becomes the value;
//   - a [coerce.Func] or a func(any, string) (any, error).
//
// An optional def is used when the value is empty.
func (c *Command) Coerce(key string, to any, def ...any) *Command {
	if key == "" || to == nil {
		return c.fail(pkg.ErrUndefinedValue.Wrapf("coerce requires a key and a conversion").
			With(slog.String("command", c.name)))
	}

	key = c.resolve(key)
	spec := c.coercions[key]

	switch v := to.(type) {
	case coerce.Type:
		spec.Type = v
	case string:
		if typ, err := coerce.ParseType(v); err == nil {
			spec.Type = typ

			break
		}

		re, err := coerce.ParseList(v)
		if err != nil {
			return c.fail(err)
		}

		spec.List = re
	case *regexp.Regexp:
		spec.List = v
	case coerce.Func:
		spec.Func = v
	case func(any, string) (any, error):
		spec.Func = v
	default:
		return c.fail(pkg.ErrUndefinedValue.Wrapf("unsupported conversion %T for %s", to, key))
	}

	if len(def) > 0 && def[0] != nil {
		spec.Default = def[0]
	}

	c.coercions[key] = spec

	return c
}

// Demand marks keys as required.
func (c *Command) Demand(keys ...string) *Command {
	if len(keys) == 0 {
		return c.fail(pkg.ErrUndefinedValue.Wrapf("demand requires at least one key").
			With(slog.String("command", c.name)))
	}

	for _, k := range keys {
		if k == "" {
			return c.fail(pkg.ErrUndefinedValue.Wrapf("empty demand key"))
		}

		if k = c.resolve(k); !slices.Contains(c.demands, k) {
			c.demands = append(c.demands, k)
		}
	}

	return c
}

// When declares that key requires demand. With converse, demand requires
// key as well.
func (c *Command) When(key, demand string, converse ...bool) *Command {
	if key == "" || demand == "" {
		return c.fail(pkg.ErrUndefinedValue.Wrapf("when requires two keys").
			With(slog.String("command", c.name)))
	}

	key, demand = c.resolve(key), c.resolve(demand)
	c.addWhen(When{Key: key, Demand: demand})

	if len(converse) > 0 && converse[0] {
		c.addWhen(When{Key: demand, Demand: key})
	}

	return c
}

func (c *Command) addWhen(w When) {
	if !slices.Contains(c.whens, w) {
		c.whens = append(c.whens, w)
	}
}

// Default sets the default value of key.
func (c *Command) Default(key string, value any) *Command {
	if key == "" || value == nil {
		return c.fail(pkg.ErrUndefinedValue.Wrapf("default requires a key and a value").
			With(slog.String("command", c.name)))
	}

	key = c.resolve(key)
	c.defaults[key] = value

	spec := c.coercions[key]
	spec.Default = value
	c.coercions[key] = spec

	return c
}

// SetMinArguments sets the minimum number of positional arguments.
// Zero means no constraint.
func (c *Command) SetMinArguments(n int) *Command { c.minArgs = max(n, 0); return c }

// SetMaxArguments sets the maximum number of positional arguments.
// Zero means no constraint.
func (c *Command) SetMaxArguments(n int) *Command { c.maxArgs = max(n, 0); return c }

// SetMinOptions sets the minimum number of flags. Zero means no constraint.
func (c *Command) SetMinOptions(n int) *Command { c.minOpts = max(n, 0); return c }

// SetMaxOptions sets the maximum number of flags. Zero means no constraint.
func (c *Command) SetMaxOptions(n int) *Command { c.maxOpts = max(n, 0); return c }

// Action sets the function run by the engine's Exec.
func (c *Command) Action(fn Action) *Command {
	if fn == nil {
		return c.fail(pkg.ErrUndefinedValue.Wrapf("nil action").
			With(slog.String("command", c.name)))
	}

	c.action = fn

	return c
}

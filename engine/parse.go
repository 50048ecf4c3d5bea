package engine

import (
	"context"
	"log/slog"
	"strings"

	"github.com/origin1tech/pargv/coerce"
	"github.com/origin1tech/pargv/command"
	"github.com/origin1tech/pargv/pkg"
)

// Parse is [Engine.ParseContext] with a background context.
func (e *Engine) Parse(argv ...string) (*command.Result, error) {
	return e.ParseContext(context.Background(), argv...)
}

// ParseContext matches argv against the command named by its first element,
// or against the default command, and returns the typed result.
//
// Every failure is passed to the error handler and returned; no partial
// result is produced.
func (e *Engine) ParseContext(ctx context.Context, argv ...string) (*command.Result, error) {
	_, res, err := e.parse(ctx, argv)

	return res, err
}

func (e *Engine) parse(ctx context.Context, argv []string) (*command.Command, *command.Result, error) {
	args := e.Normalize(argv)

	e.logger.TraceContext(ctx, "parse start",
		slog.Any("argv", argv),
		slog.Any("normalized", args),
	)

	cmd, rest := e.resolve(args)

	stats := cmd.Stats(rest, false)

	e.logger.TraceContext(ctx, "matched",
		slog.String("command", cmd.Name()),
		slog.Any("normalized", stats.Normalized()),
		slog.Any("map", stats.Map()),
	)

	if err := e.validate(cmd, stats); err != nil {
		return cmd, nil, e.fail(ctx, err)
	}

	res := &command.Result{Source: args}
	if !cmd.IsDefault() {
		res.Command = cmd.Name()
	}

	if err := e.assemble(cmd, stats, res); err != nil {
		return cmd, nil, e.fail(ctx, err)
	}

	e.setLast(stats, res)

	e.logger.DebugContext(ctx, "parsed",
		slog.String("command", cmd.Name()),
		slog.Int("arguments", len(res.Arguments)),
		slog.Int("flags", len(res.Flags)),
	)

	return cmd, res, nil
}

// Match returns the command argv selects and the classification of the
// remaining elements, without validating or coercing them.
func (e *Engine) Match(argv ...string) (*command.Command, *command.Stats) {
	cmd, rest := e.resolve(e.Normalize(argv))

	return cmd, cmd.Stats(rest, false)
}

// resolve selects the command named by the first element of args and
// returns it with the remaining elements.
func (e *Engine) resolve(args []string) (*command.Command, []string) {
	if len(args) == 0 || command.IsFlagShaped(args[0]) || args[0] == "--" {
		return e.def, args
	}

	e.mu.RLock()
	c := e.lookup(args[0])
	e.mu.RUnlock()

	if c == nil {
		return e.def, args
	}

	return c, args[1:]
}

// validate stops at the first violated constraint.
func (e *Engine) validate(cmd *command.Command, s *command.Stats) error {
	attr := slog.String("command", cmd.Name())

	if !e.opts.AllowAnonymous {
		if unknown := unknowns(s); len(unknown) > 0 {
			msg := "unknown argument " + strings.Join(unknown, ", ")
			if hint := e.suggest(cmd, unknown[0]); hint != "" {
				msg += " (did you mean " + hint + "?)"
			}

			return pkg.ErrValidation.Wrapf("%s", msg).
				With(attr, slog.Any("arguments", unknown))
		}
	}

	if len(s.Missing) > 0 {
		return pkg.ErrValidation.Wrapf("missing required %s", strings.Join(s.Missing, ", ")).
			With(attr, slog.Any("missing", s.Missing))
	}

	if len(s.Whens) > 0 {
		w := s.Whens[0]

		return pkg.ErrValidation.Wrapf("%s requires %s but is missing", w.Key, w.Demand).
			With(attr, slog.String("key", w.Key), slog.String("demand", w.Demand))
	}

	nargs, nopts := counts(cmd, s)

	if n := cmd.MinArguments(); n > 0 && nargs < n {
		return pkg.ErrValidation.Wrapf("expected at least %d arguments but got %d", n, nargs).With(attr)
	}

	if n := cmd.MaxArguments(); n > 0 && nargs > n {
		return pkg.ErrValidation.Wrapf("expected at most %d arguments but got %d", n, nargs).With(attr)
	}

	if n := cmd.MinOptions(); n > 0 && nopts < n {
		return pkg.ErrValidation.Wrapf("expected at least %d options but got %d", n, nopts).With(attr)
	}

	if n := cmd.MaxOptions(); n > 0 && nopts > n {
		return pkg.ErrValidation.Wrapf("expected at most %d options but got %d", n, nopts).With(attr)
	}

	return nil
}

// unknowns returns the anonymous elements that are not values of an
// anonymous flag.
func unknowns(s *command.Stats) []string {
	var out []string

	for _, e := range s.Entries {
		if e.Kind == command.KindAnonymous {
			out = append(out, e.Text)
		}
	}

	return out
}

// counts returns the number of positional slots and flags given in the
// argument list. A variadic positional is one slot; injected defaults are
// not counted.
func counts(cmd *command.Command, s *command.Stats) (nargs, nopts int) {
	seenVariadic := false

	for _, e := range s.Entries {
		if e.Injected {
			continue
		}

		switch e.Kind {
		case command.KindPositional:
			if e.Key == cmd.Variadic() {
				if seenVariadic {
					continue
				}

				seenVariadic = true
			}

			nargs++
		case command.KindFlag:
			nopts++
		}
	}

	return nargs, nopts
}

// assemble coerces the matched entries into res.
func (e *Engine) assemble(cmd *command.Command, s *command.Stats, res *command.Result) error {
	var (
		caster   = cmd.Options().Caster()
		before   = cmd.Options().CastBeforeCoerce
		variadic []any
		hasVar   bool
	)

	entries := s.Entries

	for i := 0; i < len(entries); i++ {
		en := entries[i]

		switch en.Kind {
		case command.KindPositional:
			if en.Placeholder() {
				res.Arguments = append(res.Arguments, nil)

				continue
			}

			if en.Key == cmd.Variadic() {
				hasVar = true

				if en.Injected {
					variadic = append(variadic, list(en.Value)...)

					continue
				}
			}

			v := en.Value
			if !en.Injected {
				var err error
				if v, err = caster.Apply(en.Key, cmd.Spec(en.Key), en.Text, before); err != nil {
					return err
				}
			}

			if en.Key == cmd.Variadic() {
				variadic = append(variadic, v)
			} else {
				res.Arguments = append(res.Arguments, v)
			}

		case command.KindFlag:
			next, consumed := valueOf(entries, i)
			if consumed {
				i++
			}

			v, err := e.flag(cmd, caster, before, en, next, consumed)
			if err != nil {
				return err
			}

			res.Set(en.Key, v)

		case command.KindAnonymous:
			if !e.opts.AllowAnonymous {
				continue
			}

			if !command.IsFlagShaped(en.Text) {
				res.Arguments = append(res.Arguments, caster.Auto(en.Text))

				continue
			}

			var v any = true
			if next, ok := valueOf(entries, i); ok {
				i++
				v = caster.Auto(next.Text)
			}

			res.Set(en.Text, v)
		}
	}

	if hasVar {
		res.Arguments = insertVariadic(cmd, res.Arguments, variadic)
	}

	return nil
}

// valueOf returns the value entry that follows the flag at i.
func valueOf(entries []command.Entry, i int) (command.Entry, bool) {
	if i+1 < len(entries) && entries[i+1].Kind == command.KindValue &&
		entries[i+1].Key == entries[i].Key {
		return entries[i+1], true
	}

	return command.Entry{}, false
}

// flag returns the typed value of the flag entry en.
func (e *Engine) flag(
	cmd *command.Command,
	caster coerce.Caster,
	before bool,
	en, next command.Entry,
	hasNext bool,
) (any, error) {
	spec := cmd.Spec(en.Key)

	if en.Negated {
		if !cmd.IsBool(en.Key) {
			return nil, pkg.ErrValidation.
				Wrapf("%s cannot be negated because %s is not a boolean flag", en.Text, en.Key).
				With(slog.String("command", cmd.Name()), slog.String("key", en.Key))
		}

		return false, nil
	}

	switch {
	case en.Injected && cmd.IsBool(en.Key):
		return en.Value, nil
	case cmd.IsBool(en.Key):
		return caster.Apply(en.Key, spec, "true", before)
	case hasNext && next.Injected:
		return next.Value, nil
	case hasNext:
		return caster.Apply(en.Key, spec, next.Text, before)
	case cmd.ValueRequired(en.Key):
		return nil, pkg.ErrValidation.Wrapf("%s requires a value", en.Text).
			With(slog.String("command", cmd.Name()), slog.String("key", en.Key))
	case spec.Default != nil:
		return spec.Default, nil
	default:
		return "", nil
	}
}

// insertVariadic places the collected variadic values at the variadic's
// ordinal as a single element.
func insertVariadic(cmd *command.Command, args, values []any) []any {
	idx := len(cmd.Positionals()) - 1

	for len(args) < idx {
		args = append(args, nil)
	}

	if values == nil {
		values = []any{}
	}

	out := make([]any, 0, len(args)+1)
	out = append(out, args[:idx]...)
	out = append(out, values)

	return append(out, args[idx:]...)
}

// list returns v as a list of values.
func list(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}

		return out
	case nil:
		return nil
	default:
		return []any{v}
	}
}

func (e *Engine) fail(ctx context.Context, err error) error {
	e.logger.DebugContext(ctx, "parse failed", slog.Any("error", err))
	e.report(err)

	return err
}

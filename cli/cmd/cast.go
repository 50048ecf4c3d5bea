package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/origin1tech/pargv/coerce"
	"github.com/origin1tech/pargv/log"
)

// Cast coerces a single value and prints it with its Go type.
type Cast struct {
	Output `embed:""`

	Type string `default:"auto" help:"Type to cast to."                       short:"t"`
	List string `               help:"Enumeration or /regexp/ to match."       short:"l"`
	Expr string `               help:"Expression converting the cast value."   short:"e"`

	CastInside       bool `help:"Auto-cast values nested in objects and JSON."`
	IgnoreTypeErrors bool `help:"Keep the raw value when it fails its type."`

	Value string `arg:"" help:"Value to cast." name:"value"`
}

// Run executes the cast command.
func (c *Cast) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	v, err := c.cast()
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "cast value",
		slog.String("raw", c.Value),
		slog.String("type", c.Type),
	)

	return c.write(ctx, stdout(ctx), map[string]any{
		"value":    v,
		"type":     fmt.Sprintf("%T", v),
		"detected": string(coerce.Detect(c.Value)),
	})
}

func (c *Cast) cast() (any, error) {
	typ, err := coerce.ParseType(c.Type)
	if err != nil {
		return nil, err
	}

	spec := coerce.Spec{Type: typ}

	if c.List != "" {
		if spec.List, err = coerce.ParseList(c.List); err != nil {
			return nil, err
		}
	}

	if c.Expr != "" {
		if spec.Func, err = coerce.Expr(c.Expr); err != nil {
			return nil, err
		}
	}

	caster := coerce.Caster{
		IgnoreTypeErrors: c.IgnoreTypeErrors,
		CastInside:       c.CastInside,
	}

	return caster.Apply("value", spec, c.Value, true)
}

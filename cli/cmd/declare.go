package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/origin1tech/pargv/engine"
	"github.com/origin1tech/pargv/log"
)

// Declare holds the flags that declare commands and parse policies.
type Declare struct {
	Usage  []string `help:"Command usage string (repeatable)."  placeholder:"USAGE" sep:"none" short:"u"`
	Schema string   `help:"YAML file declaring commands."                                     short:"s" type:"existingfile"`

	AllowAnonymous   bool   `help:"Accept arguments matching no declared key."`
	IgnoreTypeErrors bool   `help:"Keep raw values that fail their type."`
	CastInside       bool   `help:"Auto-cast values nested in objects and JSON."`
	CastBeforeCoerce bool   `help:"Cast values before coercion functions see them."`
	Delimiter        string `default:" " help:"Separator of an argument list given as one string."`
}

// engine returns an engine with the declared commands registered.
//
// Failures are returned rather than handled; the engine only logs them.
func (d *Declare) engine(ctx context.Context) (*engine.Engine, error) {
	e := engine.New(
		engine.WithAllowAnonymous(d.AllowAnonymous),
		engine.WithIgnoreTypeErrors(d.IgnoreTypeErrors),
		engine.WithCastInside(d.CastInside),
		engine.WithCastBeforeCoerce(d.CastBeforeCoerce),
		engine.WithDelimiter(d.Delimiter),
		engine.WithLogger(log.Default()),
		engine.WithErrorHandler(func(_ string, err error) {
			log.DebugContext(ctx, "engine error", slog.Any("error", err))
		}),
	)

	if d.Schema != "" {
		file, err := os.Open(d.Schema)
		if err != nil {
			return nil, ErrReadSchema.Wrap(err).With(slog.String("file", d.Schema))
		}
		defer file.Close()

		schema, err := LoadSchema(file)
		if err != nil {
			return nil, err
		}

		if err := schema.Apply(e); err != nil {
			return nil, err
		}
	}

	for _, usage := range d.Usage {
		if _, err := e.Command(usage); err != nil {
			return nil, err
		}
	}

	log.DebugContext(ctx, "commands declared",
		slog.Int("commands", len(e.Commands())),
		slog.String("schema", d.Schema),
	)

	return e, nil
}

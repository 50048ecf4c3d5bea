package cmd

import (
	"context"
	"log/slog"

	"github.com/origin1tech/pargv/log"
)

// Parse parses an argument list against the declared commands and prints
// the result.
type Parse struct {
	Declare `embed:""`
	Output  `embed:""`

	Exec bool `help:"Also run the matched command's action."`

	Args []string `arg:"" help:"Argument list to parse." name:"args" optional:"" passthrough:""`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	e, err := p.engine(ctx)
	if err != nil {
		return err
	}

	parse := e.ParseContext
	if p.Exec {
		parse = e.ExecContext
	}

	res, err := parse(ctx, p.Args...)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "parsed arguments",
		slog.String("command", res.Command),
		slog.Int("arguments", len(res.Arguments)),
	)

	return p.write(ctx, stdout(ctx), res.ToMap())
}

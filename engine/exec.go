package engine

import (
	"context"
	"log/slog"

	"github.com/origin1tech/pargv/command"
)

// Exec is [Engine.ExecContext] with a background context.
func (e *Engine) Exec(argv ...string) (*command.Result, error) {
	return e.ExecContext(context.Background(), argv...)
}

// ExecContext parses argv and runs the action of the matched command.
//
// The result's arguments are padded with nils up to the number of declared
// positionals first. The action receives them as args only when arguments
// are spread; see [WithSpreadArguments]. An action error is passed to the
// error handler and returned with the result.
func (e *Engine) ExecContext(ctx context.Context, argv ...string) (*command.Result, error) {
	cmd, res, err := e.parse(ctx, argv)
	if err != nil {
		return nil, err
	}

	for len(res.Arguments) < len(cmd.Positionals()) {
		res.Arguments = append(res.Arguments, nil)
	}

	var args []any
	if e.opts.SpreadArguments {
		args = res.Arguments
	}

	e.logger.TraceContext(ctx, "exec",
		slog.String("command", cmd.Name()),
		slog.Bool("action", cmd.HasAction()),
		slog.Bool("spread", e.opts.SpreadArguments),
	)

	if err := cmd.Run(args, res); err != nil {
		return res, e.fail(ctx, err)
	}

	return res, nil
}

package cmd

import (
	"context"

	"github.com/origin1tech/pargv/command"
)

// Stats prints how an argument list is matched against the declared
// commands, without validating it.
type Stats struct {
	Declare `embed:""`
	Output  `embed:""`

	Args []string `arg:"" help:"Argument list to match." name:"args" optional:"" passthrough:""`
}

// Run executes the stats command.
func (s *Stats) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	e, err := s.engine(ctx)
	if err != nil {
		return err
	}

	cmd, st := e.Match(s.Args...)

	return s.write(ctx, stdout(ctx), statsMap(cmd, st))
}

func statsMap(cmd *command.Command, s *command.Stats) map[string]any {
	whens := make([]any, len(s.Whens))
	for i, w := range s.Whens {
		whens[i] = map[string]any{"key": w.Key, "demand": w.Demand}
	}

	name := cmd.Name()
	if cmd.IsDefault() {
		name = ""
	}

	return map[string]any{
		"command":    name,
		"normalized": s.Normalized(),
		"map":        s.Map(),
		"commands":   s.Commands,
		"options":    s.Options,
		"anonymous":  s.Anonymous,
		"missing":    s.Missing,
		"whens":      whens,
	}
}

package command

import "github.com/origin1tech/pargv/coerce"

// Options are the parse policies shared by an engine and all its commands.
type Options struct {
	// AllowAnonymous accepts arguments that match no declared key.
	AllowAnonymous bool
	// IgnoreTypeErrors keeps raw values that fail their declared type.
	IgnoreTypeErrors bool
	// CastInside auto-casts values nested in objects and JSON.
	CastInside bool
	// CastBeforeCoerce casts values to their declared type before passing
	// them to a user coercion function.
	CastBeforeCoerce bool
	// SpreadArguments passes the positional arguments to actions.
	SpreadArguments bool
	// Delimiter splits an argument list given as a single string.
	Delimiter string
}

// DefaultDelimiter splits an argument list given as a single string.
const DefaultDelimiter = " "

// Caster returns the value caster configured by o.
func (o *Options) Caster() coerce.Caster {
	if o == nil {
		return coerce.Caster{}
	}

	return coerce.Caster{
		IgnoreTypeErrors: o.IgnoreTypeErrors,
		CastInside:       o.CastInside,
	}
}

// Config is passed to every command at construction.
type Config struct {
	// Options is shared with the engine; nil uses the zero policies.
	Options *Options
	// Global is the command whose flags every other command also accepts.
	Global *Command
	// Report receives every builder failure.
	Report func(error)
}

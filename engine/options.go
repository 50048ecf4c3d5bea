package engine

import (
	"github.com/origin1tech/pargv/command"
	"github.com/origin1tech/pargv/log"
)

// Option configures an [Engine].
type Option func(*Engine)

// ErrorHandler receives the formatted message and the error of every
// registration and parse failure.
type ErrorHandler func(msg string, err error)

// WithAllowAnonymous accepts arguments that match no declared key. They are
// auto-cast and appended to the result.
func WithAllowAnonymous(allow bool) Option {
	return func(e *Engine) { e.opts.AllowAnonymous = allow }
}

// WithIgnoreTypeErrors keeps the raw text of values that fail their type
// instead of failing the parse.
func WithIgnoreTypeErrors(ignore bool) Option {
	return func(e *Engine) { e.opts.IgnoreTypeErrors = ignore }
}

// WithCastInside auto-casts the values nested in objects and JSON.
func WithCastInside(cast bool) Option {
	return func(e *Engine) { e.opts.CastInside = cast }
}

// WithCastBeforeCoerce casts values to their declared type before passing
// them to a coercion function.
func WithCastBeforeCoerce(cast bool) Option {
	return func(e *Engine) { e.opts.CastBeforeCoerce = cast }
}

// WithSpreadArguments passes the positional arguments to actions.
func WithSpreadArguments(spread bool) Option {
	return func(e *Engine) { e.opts.SpreadArguments = spread }
}

// WithDelimiter sets the separator used when an argument list is given as a
// single string. An empty delimiter restores [command.DefaultDelimiter].
func WithDelimiter(delim string) Option {
	return func(e *Engine) {
		if delim == "" {
			delim = command.DefaultDelimiter
		}

		e.opts.Delimiter = delim
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithErrorHandler replaces the default handler, which prints the message
// to stderr and exits with status 1.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(e *Engine) {
		if fn != nil {
			e.onError = fn
		}
	}
}

func applyOptions(e *Engine, opts ...Option) {
	for _, opt := range opts {
		opt(e)
	}
}

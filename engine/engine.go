package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/origin1tech/pargv/command"
	"github.com/origin1tech/pargv/grammar"
	"github.com/origin1tech/pargv/log"
	"github.com/origin1tech/pargv/pkg"
)

// Engine is a registry of commands and the parser that matches argument
// lists against them.
//
// Commands are registered once, typically at startup; parsing may then run
// from any number of goroutines.
type Engine struct {
	mu       sync.RWMutex
	opts     *command.Options
	def      *command.Command
	commands []*command.Command
	last     struct {
		stats  *command.Stats
		result *command.Result
	}

	hookMu  sync.RWMutex
	onError ErrorHandler

	logger log.Logger
}

// New returns an engine with an empty default command.
func New(opts ...Option) *Engine {
	e := &Engine{
		opts:    &command.Options{Delimiter: command.DefaultDelimiter},
		onError: exitHandler(os.Stderr, os.Exit),
	}

	applyOptions(e, opts...)

	// an empty usage always parses
	e.def, _ = command.New("", command.Config{Options: e.opts, Report: e.report})

	return e
}

// Command registers the command declared by usage. A usage that starts with
// a token instead of a name adds its tokens to the default command, which is
// then returned.
//
// Failures are grammar errors and are also passed to the error handler.
func (e *Engine) Command(usage string, description ...string) (*command.Command, error) {
	u, err := grammar.ParseUsage(usage)
	if err != nil {
		e.report(err)

		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if u.Name == command.DefaultName {
		for _, t := range u.Tokens {
			if err := e.def.Expand(t); err != nil {
				return nil, err
			}
		}

		return e.def, nil
	}

	for _, name := range append([]string{u.Name}, u.Aliases...) {
		if c := e.lookup(name); c != nil {
			err := pkg.ErrGrammar.Wrapf("command %s is already registered as %s", name, c.Name()).
				With(slog.String("usage", usage))
			e.report(err)

			return nil, err
		}
	}

	c, err := command.New(usage, command.Config{
		Options: e.opts,
		Global:  e.def,
		Report:  e.report,
	}, description...)
	if err != nil {
		return nil, err
	}

	e.commands = append(e.commands, c)

	e.logger.Debug(
		"registered command",
		slog.String("command", c.Name()),
		slog.Any("aliases", c.Aliases()),
		slog.Int("positionals", len(c.Positionals())),
		slog.Int("flags", len(c.Flags())),
	)

	return c, nil
}

// Default returns the default command.
func (e *Engine) Default() *command.Command { return e.def }

// Commands returns the registered commands, excluding the default command,
// in registration order.
func (e *Engine) Commands() []*command.Command {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return slices.Clone(e.commands)
}

// Find returns the first command named or aliased name.
func (e *Engine) Find(name string) (*command.Command, bool) {
	if name == command.DefaultName {
		return e.def, true
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	c := e.lookup(name)

	return c, c != nil
}

// lookup must be called with e.mu held.
func (e *Engine) lookup(name string) *command.Command {
	for _, c := range e.commands {
		if slices.Contains(c.Names(), name) {
			return c
		}
	}

	return nil
}

// Last returns the statistics and result of the most recent successful
// parse, or nils.
func (e *Engine) Last() (*command.Stats, *command.Result) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.last.stats, e.last.result
}

func (e *Engine) setLast(s *command.Stats, r *command.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.last.stats, e.last.result = s, r
}

// Options returns the parse policies shared by every command.
func (e *Engine) Options() command.Options { return *e.opts }

// OnError replaces the error handler. A nil fn is ignored.
// The handler may be called while commands are being registered, so it must
// not register commands itself.
func (e *Engine) OnError(fn ErrorHandler) {
	if fn == nil {
		return
	}

	e.hookMu.Lock()
	defer e.hookMu.Unlock()

	e.onError = fn
}

func (e *Engine) report(err error) {
	e.hookMu.RLock()
	fn := e.onError
	e.hookMu.RUnlock()

	fn(err.Error(), err)
}

// exitHandler prints the message to w and exits with status 1.
func exitHandler(w io.Writer, exit func(int)) ErrorHandler {
	style := lipgloss.NewRenderer(w).NewStyle().
		Foreground(lipgloss.Color("1")).
		Bold(true)

	return func(msg string, _ error) {
		fmt.Fprintln(w, style.Render(pkg.Name+":"), msg)
		exit(1)
	}
}

package command

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/origin1tech/pargv/coerce"
	"github.com/origin1tech/pargv/grammar"
	"github.com/origin1tech/pargv/pkg"
)

// DefaultName is the name of the default command.
const DefaultName = grammar.DefaultName

// Action is called by the engine with the result of a successful parse.
// args holds the positional arguments when spreading is enabled, and is nil
// otherwise.
type Action func(args []any, res *Result, cmd *Command) error

// When is a dependency: if Key is present, Demand must be present too.
type When struct {
	Key    string
	Demand string
}

// Command is the model of one command.
//
// A Command is mutated only by its builder methods; parsing only reads it.
type Command struct {
	name        string
	aliases     []string
	usage       string
	description string
	external    *grammar.External

	positionals []string
	flags       []string
	bools       []string
	variadic    string

	table     AliasTable
	tokens    map[string]*grammar.Token
	describes map[string]string
	defaults  map[string]any
	demands   []string
	whens     []When
	coercions map[string]coerce.Spec

	minArgs, maxArgs int
	minOpts, maxOpts int

	action Action

	opts   *Options
	global *Command
	report func(error)
	err    error
}

// New parses usage and returns the command it declares.
// The error is always a grammar error; it is also passed to cfg.Report.
func New(usage string, cfg Config, description ...string) (*Command, error) {
	u, err := grammar.ParseUsage(usage)
	if err != nil {
		if cfg.Report != nil {
			cfg.Report(err)
		}

		return nil, err
	}

	c := &Command{
		name:        u.Name,
		aliases:     u.Aliases,
		usage:       u.Text,
		description: strings.Join(description, " "),
		external:    u.External,
		table:       AliasTable{},
		tokens:      map[string]*grammar.Token{},
		describes:   map[string]string{},
		defaults:    map[string]any{},
		coercions:   map[string]coerce.Spec{},
		opts:        cfg.Options,
		global:      cfg.Global,
		report:      cfg.Report,
	}

	if c.opts == nil {
		c.opts = &Options{}
	}

	if u.Name == DefaultName {
		c.global = nil
	}

	for _, t := range u.Tokens {
		if err := c.Expand(t); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Expand registers a parsed token in the command.
func (c *Command) Expand(t *grammar.Token) error {
	if t == nil || t.Key == "" {
		return c.failErr(pkg.ErrUndefinedValue.Wrapf("empty token"))
	}

	if t.Flag {
		if !slices.Contains(c.flags, t.Key) {
			c.flags = append(c.flags, t.Key)
		}

		if t.Bool && !slices.Contains(c.bools, t.Key) {
			c.bools = append(c.bools, t.Key)
		}
	} else {
		if c.variadic != "" {
			return c.failErr(pkg.ErrGrammar.
				Wrapf("variadic %s must be the last argument", c.variadic).
				With(slog.String("command", c.name)))
		}

		if slices.Contains(c.positionals, t.Key) {
			return c.failErr(pkg.ErrGrammar.
				Wrapf("argument %s is declared twice", t.Key).
				With(slog.String("command", c.name)))
		}

		t.Index = len(c.positionals)
		c.positionals = append(c.positionals, t.Key)

		if t.Variadic {
			c.variadic = t.Key
		}
	}

	c.table.Set(t.Key, t.Aliases...)

	if !t.Flag {
		c.table[strconv.Itoa(t.Index)] = t.Key
	}

	if t.Describe == "" {
		t.Describe = describe(t)
	}

	c.describes[t.Key] = t.Describe
	c.tokens[t.Key] = t

	if t.Required && !slices.Contains(c.demands, t.Key) {
		c.demands = append(c.demands, t.Key)
	}

	spec := c.coercions[t.Key]
	spec.Type = t.Type

	if t.HasDefault {
		c.defaults[t.Key] = t.Default
		spec.Default = t.Default
	}

	c.coercions[t.Key] = spec

	return nil
}

func describe(t *grammar.Token) string {
	switch {
	case t.Flag && t.Required:
		return fmt.Sprintf("Required flag %s", t.Key)
	case t.Flag:
		return fmt.Sprintf("Optional flag %s", t.Key)
	case t.Required:
		return fmt.Sprintf("Required argument %s", t.Key)
	default:
		return fmt.Sprintf("Optional argument %s", t.Key)
	}
}

// AliasToKey resolves name to its key. Flags may be given without dashes;
// flags of the global command are resolved too.
func (c *Command) AliasToKey(name string) (string, bool) {
	for _, cand := range candidates(name) {
		if key, ok := c.table.Key(cand); ok {
			return key, true
		}

		if c.global != nil && strings.HasPrefix(cand, "-") {
			if key, ok := c.global.table.Key(cand); ok && isFlagKey(key) {
				return key, true
			}
		}
	}

	return "", false
}

// candidates lists the spellings tried when resolving name.
func candidates(name string) []string {
	if name == "" || strings.HasPrefix(name, "-") {
		return []string{name}
	}

	return []string{name, grammar.NormalizeFlag(name)}
}

func isFlagKey(key string) bool { return strings.HasPrefix(key, "-") }

// resolve returns the key of name, or name itself when it is unknown.
func (c *Command) resolve(name string) string {
	if key, ok := c.AliasToKey(name); ok {
		return key
	}

	return name
}

// lookupFlag resolves the literal text of a flag argument.
func (c *Command) lookupFlag(arg string) (string, bool) {
	if key, ok := c.table.Key(arg); ok {
		return key, true
	}

	if c.global != nil {
		if key, ok := c.global.table.Key(arg); ok && isFlagKey(key) {
			return key, true
		}
	}

	return "", false
}

// Name returns the command name.
func (c *Command) Name() string { return c.name }

// Aliases returns the command's aliases.
func (c *Command) Aliases() []string { return slices.Clone(c.aliases) }

// Names returns the name followed by the aliases.
func (c *Command) Names() []string { return append([]string{c.name}, c.aliases...) }

// IsDefault reports whether c is the default command.
func (c *Command) IsDefault() bool { return c.name == DefaultName }

// Usage returns the usage string the command was declared with.
func (c *Command) Usage() string { return c.usage }

// Description returns the command description.
func (c *Command) Description() string { return c.description }

// External returns the external program bound to the command, or nil.
func (c *Command) External() *grammar.External { return c.external }

// AliasTable returns a copy of the alias table.
func (c *Command) AliasTable() AliasTable { return c.table.Clone() }

// Describes returns a copy of the key descriptions.
func (c *Command) Describes() map[string]string { return maps.Clone(c.describes) }

// Positionals returns the positional keys in ordinal order.
func (c *Command) Positionals() []string { return slices.Clone(c.positionals) }

// Flags returns the flag keys in declaration order.
func (c *Command) Flags() []string { return slices.Clone(c.flags) }

// Bools returns the boolean flag keys.
func (c *Command) Bools() []string { return slices.Clone(c.bools) }

// Variadic returns the variadic positional key, if any.
func (c *Command) Variadic() string { return c.variadic }

// Defaults returns a copy of the declared defaults.
func (c *Command) Defaults() map[string]any { return maps.Clone(c.defaults) }

// Demands returns the demanded keys.
func (c *Command) Demands() []string { return slices.Clone(c.demands) }

// Whens returns the dependencies in declaration order.
func (c *Command) Whens() []When { return slices.Clone(c.whens) }

// Token returns the descriptor of key.
func (c *Command) Token(key string) (*grammar.Token, bool) {
	if t, ok := c.tokens[key]; ok {
		return t, true
	}

	if c.global != nil && isFlagKey(key) {
		return c.global.Token(key)
	}

	return nil, false
}

// Spec returns the coercion of key, falling back to the global command for
// flags.
func (c *Command) Spec(key string) coerce.Spec {
	if s, ok := c.coercions[key]; ok {
		return s
	}

	if c.global != nil && isFlagKey(key) {
		return c.global.Spec(key)
	}

	return coerce.Spec{}
}

// IsFlag reports whether key is a flag of c or of the global command.
func (c *Command) IsFlag(key string) bool {
	return slices.Contains(c.flags, key) ||
		(c.global != nil && slices.Contains(c.global.flags, key))
}

// IsBool reports whether key is a boolean flag of c or of the global command.
func (c *Command) IsBool(key string) bool {
	if slices.Contains(c.bools, key) {
		return true
	}

	if slices.Contains(c.flags, key) {
		return false
	}

	return c.global != nil && slices.Contains(c.global.bools, key)
}

// IsDemanded reports whether key must be present after parsing.
func (c *Command) IsDemanded(key string) bool { return slices.Contains(c.demands, key) }

// ValueRequired reports whether the flag key must be followed by a value.
func (c *Command) ValueRequired(key string) bool {
	t, ok := c.Token(key)

	return ok && t.As != "" && t.Required
}

// MinArguments returns the minimum number of positional arguments.
func (c *Command) MinArguments() int { return c.minArgs }

// MaxArguments returns the maximum number of positional arguments.
func (c *Command) MaxArguments() int { return c.maxArgs }

// MinOptions returns the minimum number of flags.
func (c *Command) MinOptions() int { return c.minOpts }

// MaxOptions returns the maximum number of flags.
func (c *Command) MaxOptions() int { return c.maxOpts }

// Options returns the parse policies of c.
func (c *Command) Options() *Options { return c.opts }

// Global returns the command whose flags c also accepts, or nil.
func (c *Command) Global() *Command { return c.global }

// Run calls the command's action, if any.
func (c *Command) Run(args []any, res *Result) error {
	if c.action == nil {
		return nil
	}

	return c.action(args, res, c)
}

// HasAction reports whether an action was registered.
func (c *Command) HasAction() bool { return c.action != nil }

// Err returns the first builder failure.
func (c *Command) Err() error { return c.err }

func (c *Command) fail(err error) *Command {
	_ = c.failErr(err)

	return c
}

func (c *Command) failErr(err error) error {
	if c.err == nil {
		c.err = err
	}

	if c.report != nil {
		c.report(err)
	}

	return err
}

package cmd

import (
	"errors"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"

	"github.com/origin1tech/pargv/coerce"
	"github.com/origin1tech/pargv/command"
	"github.com/origin1tech/pargv/engine"
	"github.com/origin1tech/pargv/pkg"
)

// Schema declares commands in a YAML document:
//
//	commands:
//	  - usage: generate.g <template> [name] --force.f
//	    description: Generate a file from a template
//	    defaults: {name: about.html}
//	    options:
//	      - token: --out, -o <dir>
//	        describe: Output directory
//	    whens:
//	      - {key: --out, demand: --force}
//	    coerce:
//	      name: {expr: 'mung.prefix(value, "out/")'}
type Schema struct {
	Commands []CommandSchema `yaml:"commands"`
}

// CommandSchema declares one command.
type CommandSchema struct {
	Usage        string                  `yaml:"usage"`
	Description  string                  `yaml:"description"`
	Options      []OptionSchema          `yaml:"options"`
	Aliases      map[string][]string     `yaml:"aliases"`
	Describe     map[string]string       `yaml:"describe"`
	Defaults     map[string]any          `yaml:"defaults"`
	Demand       []string                `yaml:"demand"`
	Whens        []WhenSchema            `yaml:"whens"`
	Coerce       map[string]CoerceSchema `yaml:"coerce"`
	MinArguments int                     `yaml:"min_arguments"`
	MaxArguments int                     `yaml:"max_arguments"`
	MinOptions   int                     `yaml:"min_options"`
	MaxOptions   int                     `yaml:"max_options"`
}

// OptionSchema declares an option added to a command after its usage.
type OptionSchema struct {
	Token    string `yaml:"token"`
	Describe string `yaml:"describe"`
	Default  any    `yaml:"default"`
	Type     string `yaml:"type"`
}

// WhenSchema declares a dependency between two keys.
type WhenSchema struct {
	Key      string `yaml:"key"`
	Demand   string `yaml:"demand"`
	Converse bool   `yaml:"converse"`
}

// CoerceSchema declares how the values of a key are converted. At most one
// of Type, List and Expr is used, in that order.
type CoerceSchema struct {
	Type    string `yaml:"type"`
	List    string `yaml:"list"`
	Expr    string `yaml:"expr"`
	Default any    `yaml:"default"`
}

// LoadSchema decodes a schema from r.
func LoadSchema(r io.Reader) (*Schema, error) {
	var s Schema

	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}

		return nil, ErrReadSchema.Wrap(err)
	}

	return &s, nil
}

// Apply registers the commands of s in e.
func (s *Schema) Apply(e *engine.Engine) error {
	for _, cs := range s.Commands {
		if err := cs.apply(e); err != nil {
			return err
		}
	}

	return nil
}

func (cs CommandSchema) apply(e *engine.Engine) error {
	var desc []string
	if cs.Description != "" {
		desc = append(desc, cs.Description)
	}

	c, err := e.Command(cs.Usage, desc...)
	if err != nil {
		return err
	}

	for _, o := range cs.Options {
		var opts []command.TokenOption

		if o.Describe != "" {
			opts = append(opts, command.WithDescribe(o.Describe))
		}

		if o.Type != "" {
			typ, err := coerce.ParseType(o.Type)
			if err != nil {
				return err
			}

			opts = append(opts, command.WithType(typ))
		}

		if o.Default != nil {
			opts = append(opts, command.WithDefault(o.Default))
		}

		c.Option(o.Token, opts...)
	}

	for key, names := range cs.Aliases {
		c.Alias(key, names...)
	}

	for key, text := range cs.Describe {
		c.Describe(key, text)
	}

	for key, v := range cs.Defaults {
		c.Default(key, v)
	}

	if len(cs.Demand) > 0 {
		c.Demand(cs.Demand...)
	}

	for _, w := range cs.Whens {
		c.When(w.Key, w.Demand, w.Converse)
	}

	for key, co := range cs.Coerce {
		to, err := co.conversion()
		if err != nil {
			return err
		}

		c.Coerce(key, to, co.Default)
	}

	c.SetMinArguments(cs.MinArguments).
		SetMaxArguments(cs.MaxArguments).
		SetMinOptions(cs.MinOptions).
		SetMaxOptions(cs.MaxOptions)

	if err := c.Err(); err != nil {
		return pkg.WrapError(err).With(slog.String("usage", cs.Usage))
	}

	return nil
}

func (co CoerceSchema) conversion() (any, error) {
	switch {
	case co.Type != "":
		return coerce.ParseType(co.Type)
	case co.List != "":
		return co.List, nil
	case co.Expr != "":
		return coerce.Expr(co.Expr)
	default:
		return coerce.TypeAuto, nil
	}
}

package command

import (
	"maps"
	"slices"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/origin1tech/pargv/coerce"
)

// Result is the outcome of one parse.
type Result struct {
	// Command is the matched command name, empty for the default command.
	Command string
	// Arguments are the typed positional values in ordinal order. A variadic
	// positional contributes one []any element.
	Arguments []any
	// Source is the normalized argument list.
	Source []string
	// Flags maps camel-cased flag names to typed values. Dotted names are
	// nested maps.
	Flags map[string]any

	seen map[string]int
}

// FlagName returns the result name of a flag key: dashes stripped and each
// dot-separated segment camel-cased.
func FlagName(key string) string {
	part := strings.Split(strings.TrimLeft(key, "-"), ".")
	for i, p := range part {
		part[i] = strcase.ToLowerCamel(p)
	}

	return strings.Join(part, ".")
}

// Set stores the value of flag key. Repeated flags collect into a []any.
func (r *Result) Set(key string, v any) {
	if r.Flags == nil {
		r.Flags = map[string]any{}
	}

	if r.seen == nil {
		r.seen = map[string]int{}
	}

	name := FlagName(key)
	r.seen[name]++

	switch prev, _ := coerce.GetPath(r.Flags, name); r.seen[name] {
	case 1:
		coerce.SetPath(r.Flags, name, v)
	case 2:
		coerce.SetPath(r.Flags, name, []any{prev, v})
	default:
		list, _ := prev.([]any)
		coerce.SetPath(r.Flags, name, append(list, v))
	}
}

// Get returns the value of the flag name, given as a key ("--dry-run") or a
// result name ("dryRun").
func (r *Result) Get(name string) (any, bool) {
	if r.Flags == nil {
		return nil, false
	}

	return coerce.GetPath(r.Flags, FlagName(name))
}

// ToMap renders r with the $command, $arguments and $source entries next to
// the flags.
func (r *Result) ToMap() map[string]any {
	m := make(map[string]any, len(r.Flags)+3)
	maps.Copy(m, r.Flags)

	var cmd any
	if r.Command != "" {
		cmd = r.Command
	}

	m["$command"] = cmd
	m["$arguments"] = slices.Clone(r.Arguments)
	m["$source"] = slices.Clone(r.Source)

	return m
}

// MarshalJSON renders [Result.ToMap] as JSON.
func (r *Result) MarshalJSON() ([]byte, error) { return coerce.Marshal(r.ToMap()) }

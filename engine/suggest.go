package engine

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/origin1tech/pargv/command"
)

// suggest returns the known spelling closest to the unknown argument arg,
// or an empty string. Flags are compared with the flags of cmd and of the
// default command; other arguments given to the default command are compared
// with command names.
func (e *Engine) suggest(cmd *command.Command, arg string) string {
	var candidates []string

	switch {
	case command.IsFlagShaped(arg):
		candidates = flagSpellings(cmd.AliasTable())
		if g := cmd.Global(); g != nil {
			candidates = append(candidates, flagSpellings(g.AliasTable())...)
		}

	case cmd.IsDefault():
		for _, c := range e.Commands() {
			candidates = append(candidates, c.Names()...)
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	matches := fuzzy.Find(arg, candidates)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}

// flagSpellings returns every spelling of a flag in t, sorted.
func flagSpellings(t command.AliasTable) []string {
	var out []string

	for alias, key := range t {
		if strings.HasPrefix(key, "-") && strings.HasPrefix(alias, "-") {
			out = append(out, alias)
		}
	}

	slices.Sort(out)

	return out
}

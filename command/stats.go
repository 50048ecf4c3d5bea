package command

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValueKey marks, in [Stats.Map], an element consumed as the value of the
// flag before it.
const ValueKey = "$value"

// Kind classifies a matched element.
type Kind int

const (
	KindPositional Kind = iota
	KindFlag
	KindValue
	KindAnonymous
)

func (k Kind) String() string {
	switch k {
	case KindPositional:
		return "positional"
	case KindFlag:
		return "flag"
	case KindValue:
		return "value"
	case KindAnonymous:
		return "anonymous"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Entry is one classified element.
type Entry struct {
	Kind Kind
	// Text is the element as given, or the rendered default when injected.
	Text string
	// Key is the resolved key. For values it is the key of the owning flag;
	// for anonymous elements it is Text (or the owning anonymous flag).
	Key string
	// Negated is set for flags given as --no-name.
	Negated bool
	// Injected is set for entries added from defaults; Value then holds the
	// typed default.
	Injected bool
	Value    any
}

// Stats is the classification of an argument list against a command.
type Stats struct {
	// Commands, Options and Anonymous hold the text of the positional, flag
	// (with values) and anonymous (with values) entries.
	Commands  []string
	Options   []string
	Anonymous []string
	// Missing lists demanded keys that are absent and have no default.
	Missing []string
	// Whens lists unmet dependencies in declaration order.
	Whens []When
	// Entries are ordered positionals first, then flags, then anonymous.
	Entries []Entry
}

// Normalized returns the text of every entry.
func (s *Stats) Normalized() []string {
	out := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.Text
	}

	return out
}

// Map returns, parallel to [Stats.Normalized], the key of every entry, with
// values marked by [ValueKey].
func (s *Stats) Map() []string {
	out := make([]string, len(s.Entries))

	for i, e := range s.Entries {
		if e.Kind == KindValue {
			out[i] = ValueKey
		} else {
			out[i] = e.Key
		}
	}

	return out
}

// Has reports whether key was matched or injected.
func (s *Stats) Has(key string) bool { return matched(s.Entries, key) }

// Placeholder reports whether e only keeps the ordinal of a skipped
// positional.
func (e Entry) Placeholder() bool {
	return e.Kind == KindPositional && e.Injected && e.Value == nil
}

func matched(entries []Entry, key string) bool {
	return slices.ContainsFunc(entries, func(e Entry) bool {
		return e.Key == key && !e.Placeholder() &&
			(e.Kind == KindPositional || e.Kind == KindFlag)
	})
}

// IsFlagShaped reports whether arg looks like a flag: a dash followed by
// anything that is not a number.
func IsFlagShaped(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' || arg == "--" {
		return false
	}

	_, err := strconv.ParseFloat(arg, 64)

	return err != nil
}

// Stats classifies args, which must already be normalized and must not
// include the command name.
//
// Positional arguments are matched strictly by ordinal until every declared
// positional is consumed; a variadic positional then absorbs every further
// non-flag element, and without one the remaining elements are looked up by
// their literal text. A bare "--" ends flag interpretation.
//
// Defaults of absent keys are injected after matching. Dependencies are not
// evaluated when skipWhens is set.
func (c *Command) Stats(args []string, skipWhens bool) *Stats {
	var (
		pos, opt, anon []Entry
		ctr            int
		noFlags        bool
	)

	takesValue := func(i int) bool {
		return i < len(args) && (noFlags || !IsFlagShaped(args[i])) && args[i] != "--"
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" && !noFlags {
			noFlags = true

			continue
		}

		if !noFlags && IsFlagShaped(arg) {
			key, negated, ok := c.resolveFlag(arg)
			if !ok {
				anon = append(anon, Entry{Kind: KindAnonymous, Text: arg, Key: arg})

				if takesValue(i + 1) {
					i++
					anon = append(anon, Entry{Kind: KindValue, Text: args[i], Key: arg})
				}

				continue
			}

			opt = append(opt, Entry{Kind: KindFlag, Text: arg, Key: key, Negated: negated})

			if !negated && !c.IsBool(key) && takesValue(i+1) {
				i++
				opt = append(opt, Entry{Kind: KindValue, Text: args[i], Key: key})
			}

			continue
		}

		key, ok := "", false

		switch {
		case ctr < len(c.positionals):
			key, ok = c.table.Key(strconv.Itoa(ctr))
			ctr++
		case c.variadic != "":
			key, ok = c.variadic, true
		case !c.isOrdinal(arg):
			key, ok = c.table.Key(arg)
		}

		switch {
		case !ok:
			anon = append(anon, Entry{Kind: KindAnonymous, Text: arg, Key: arg})
		case isFlagKey(key):
			opt = append(opt, Entry{Kind: KindFlag, Text: arg, Key: key})
		default:
			pos = append(pos, Entry{Kind: KindPositional, Text: arg, Key: key})
		}
	}

	s := &Stats{}
	present := func(key string) bool { return matched(pos, key) || matched(opt, key) }

	pos = c.injectPositionals(pos, ctr)
	opt = c.injectFlags(opt, present)

	for _, key := range c.demands {
		if present(key) {
			continue
		}

		def := c.Spec(key).Default
		switch {
		case def == nil:
			s.Missing = append(s.Missing, key)
		case isFlagKey(key):
			opt = append(opt, injected(key, def, c.IsBool(key))...)
		default:
			pos = insertPositional(pos, c, key, def)
		}
	}

	if !skipWhens {
		for _, w := range c.whens {
			if present(w.Key) && !present(w.Demand) {
				s.Whens = append(s.Whens, w)
			}
		}
	}

	s.Entries = slices.Concat(pos, opt, anon)
	s.Commands = texts(pos)
	s.Options = texts(opt)
	s.Anonymous = texts(anon)

	return s
}

// isOrdinal reports whether arg is the index alias of a positional. Excess
// arguments never resolve through those aliases.
func (c *Command) isOrdinal(arg string) bool {
	i, err := strconv.Atoi(arg)

	return err == nil && i >= 0 && i < len(c.positionals) && strconv.Itoa(i) == arg
}

// resolveFlag resolves a flag argument, trying --no-name as a negation of
// --name when the literal spelling is unknown.
func (c *Command) resolveFlag(arg string) (key string, negated, ok bool) {
	if key, ok := c.lookupFlag(arg); ok {
		return key, false, true
	}

	if rest, found := strings.CutPrefix(arg, "--no-"); found && rest != "" {
		for _, name := range []string{"--" + rest, "-" + rest} {
			if key, ok := c.lookupFlag(name); ok {
				return key, true, true
			}
		}
	}

	return "", false, false
}

// injectPositionals appends defaults for the positionals from ordinal ctr
// on. A skipped optional positional followed by a defaulted one gets a nil
// placeholder to keep ordinals aligned.
func (c *Command) injectPositionals(pos []Entry, ctr int) []Entry {
	last := -1

	for i := ctr; i < len(c.positionals); i++ {
		if _, ok := c.defaults[c.positionals[i]]; ok {
			last = i
		}
	}

	for i := ctr; i <= last; i++ {
		key := c.positionals[i]

		def, ok := c.defaults[key]
		switch {
		case ok:
			pos = append(pos, Entry{Kind: KindPositional, Text: render(def), Key: key, Injected: true, Value: def})
		case !c.IsDemanded(key):
			pos = append(pos, Entry{Kind: KindPositional, Key: key, Injected: true})
		}
	}

	return pos
}

// injectFlags appends defaults for absent flags of c and of the global
// command.
func (c *Command) injectFlags(opt []Entry, present func(string) bool) []Entry {
	keys := c.flags
	if c.global != nil {
		keys = slices.Concat(keys, c.global.flags)
	}

	for _, key := range keys {
		if present(key) {
			continue
		}

		def, ok := c.defaults[key]
		if !ok && c.global != nil && !slices.Contains(c.flags, key) {
			def, ok = c.global.defaults[key]
		}

		if ok {
			opt = append(opt, injected(key, def, c.IsBool(key))...)
		}
	}

	return opt
}

func injected(key string, def any, isBool bool) []Entry {
	if isBool {
		return []Entry{{Kind: KindFlag, Text: key, Key: key, Injected: true, Value: def}}
	}

	return []Entry{
		{Kind: KindFlag, Text: key, Key: key, Injected: true},
		{Kind: KindValue, Text: render(def), Key: key, Injected: true, Value: def},
	}
}

// insertPositional places a demanded positional's default at its ordinal.
func insertPositional(pos []Entry, c *Command, key string, def any) []Entry {
	e := Entry{Kind: KindPositional, Text: render(def), Key: key, Injected: true, Value: def}
	idx := slices.Index(c.positionals, key)

	at := slices.IndexFunc(pos, func(p Entry) bool {
		return slices.Index(c.positionals, p.Key) > idx
	})
	if at < 0 {
		return append(pos, e)
	}

	return slices.Insert(pos, at, e)
}

func render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = render(e)
		}

		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

func texts(entries []Entry) []string {
	if len(entries) == 0 {
		return nil
	}

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}

	return out
}

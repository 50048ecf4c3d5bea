package grammar

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/origin1tech/pargv/pkg"
)

// DefaultName is the name of the command that owns tokens declared without
// a command name, and that handles arguments matching no other command.
const DefaultName = "__default__"

// External describes an external program bound to a command with "@path".
type External struct {
	Path    string
	Dir     string
	Ext     string
	Program string
}

// Usage is a parsed usage string.
type Usage struct {
	Name     string
	Aliases  []string
	External *External
	Tokens   []*Token
	Text     string
}

// Positionals returns the positional tokens in ordinal order.
func (u *Usage) Positionals() []*Token {
	var out []*Token

	for _, t := range u.Tokens {
		if !t.Flag {
			out = append(out, t)
		}
	}

	return out
}

// Split splits a usage string on spaces, commas and pipes.
func Split(usage string) []string {
	return strings.FieldsFunc(usage, func(r rune) bool {
		return r == ',' || r == '|' || r == ' ' || r == '\t' || r == '\n'
	})
}

// ParseUsage parses a command usage string.
//
// The first chunk names the command and its dot-separated aliases, unless it
// is already a token, in which case the usage belongs to [DefaultName]. A
// first chunk of the form @path binds an external program; the command is
// then named by the next chunk, or by the program's base name.
func ParseUsage(usage string) (*Usage, error) {
	u := &Usage{Text: strings.TrimSpace(usage)}
	chunks := Split(usage)

	switch {
	case len(chunks) == 0:
		u.Name = DefaultName

	case strings.HasPrefix(chunks[0], "@"):
		u.External = external(chunks[0][1:])
		chunks = chunks[1:]

		if len(chunks) > 0 && !IsToken(chunks[0]) {
			u.Name, u.Aliases = names(chunks[0])
			chunks = chunks[1:]
		} else {
			u.Name = strings.TrimSuffix(u.External.Program, u.External.Ext)
		}

	case IsToken(chunks[0]):
		u.Name = DefaultName

	default:
		u.Name, u.Aliases = names(chunks[0])
		chunks = chunks[1:]
	}

	if u.Name == "" {
		return nil, pkg.ErrGrammar.Wrapf("usage %q has no command name", usage).
			With(slog.String("usage", usage))
	}

	index := 0

	var variadic *Token

	for i := 0; i < len(chunks); i++ {
		var next []string

		if strings.HasPrefix(chunks[i], "-") && i+1 < len(chunks) && IsValue(chunks[i+1]) {
			next = chunks[i+1 : i+2]
		}

		t, err := ParseToken(chunks[i], next...)
		if err != nil {
			return nil, pkg.WrapError(err).With(slog.String("usage", usage))
		}

		i += len(next)

		if !t.Flag {
			if variadic != nil {
				return nil, pkg.ErrGrammar.
					Wrapf("variadic %s must be the last argument", variadic.Key).
					With(slog.String("usage", usage))
			}

			if t.Variadic {
				variadic = t
			}

			t.Index = index
			index++
		}

		u.Tokens = append(u.Tokens, t)
	}

	return u, nil
}

// ParseOption parses the token of a single option declaration, which may
// list several spellings and a value token, as in "--name, -n <value>".
func ParseOption(token string) (*Token, error) {
	chunks := Split(token)
	if len(chunks) == 0 {
		return nil, errToken(token)
	}

	if !strings.HasPrefix(chunks[0], "-") {
		return ParseToken(chunks[0])
	}

	var (
		flags  []string
		suffix string
		next   []string
	)

	for _, c := range chunks {
		switch {
		case strings.HasPrefix(c, "-"):
			name, rest, ok := strings.Cut(c, ":")
			if ok && suffix == "" {
				suffix = ":" + rest
			}

			flags = append(flags, name)

		case IsValue(c) && next == nil:
			next = []string{c}

		default:
			return nil, errToken(token)
		}
	}

	return ParseToken(strings.Join(flags, ".")+suffix, next...)
}

func names(chunk string) (string, []string) {
	part := strings.Split(chunk, ".")
	if len(part) == 1 {
		return part[0], nil
	}

	return part[0], part[1:]
}

func external(path string) *External {
	ext := filepath.Ext(path)

	return &External{
		Path:    path,
		Dir:     filepath.Dir(path),
		Ext:     ext,
		Program: filepath.Base(path),
	}
}

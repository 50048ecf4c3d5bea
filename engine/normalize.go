package engine

import (
	"os"
	"slices"
	"strings"

	"github.com/origin1tech/pargv/command"
)

// Normalize rewrites argv into the form matched by commands:
//
//   - a single element is split on the delimiter;
//   - leading elements naming the running executable are dropped;
//   - "--name=value" and "-n=value" are split in two;
//   - "-abc" is expanded to "-a", "-b", "-c".
//
// Elements after a bare "--" are kept verbatim.
func (e *Engine) Normalize(argv []string) []string {
	if len(argv) == 1 && strings.Contains(argv[0], e.opts.Delimiter) {
		argv = split(argv[0], e.opts.Delimiter)
	}

	argv = stripExecutable(argv)

	out := make([]string, 0, len(argv))

	for i, arg := range argv {
		if arg == "--" {
			return append(out, argv[i:]...)
		}

		if !command.IsFlagShaped(arg) {
			out = append(out, arg)

			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")

		switch {
		case strings.HasPrefix(name, "--"):
			out = append(out, name)
		case len(name) > 2:
			for _, r := range name[1:] {
				out = append(out, "-"+string(r))
			}
		default:
			out = append(out, name)
		}

		if hasValue {
			out = append(out, value)
		}
	}

	return out
}

func split(s, delim string) []string {
	var out []string

	for _, p := range strings.Split(s, delim) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// stripExecutable drops the leading elements of argv that name the running
// program, as when os.Args is passed unchanged.
func stripExecutable(argv []string) []string {
	var paths []string

	if len(os.Args) > 0 {
		paths = append(paths, os.Args[0])
	}

	if exe, err := os.Executable(); err == nil {
		paths = append(paths, exe)
	}

	for len(argv) > 0 && slices.Contains(paths, argv[0]) {
		argv = argv[1:]
	}

	return argv
}

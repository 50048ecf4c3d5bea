package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads YAML configuration
// files, such as the one written by the init command.
//
//	log-level: debug
//	log:
//	  pretty: false
//	allow_anonymous: true
//	usage:
//	  - generate.g <template> [name] --force.f
//
// Nested maps are flattened by joining keys with "-", so the two log
// entries above configure --log-level and --log-pretty. Keys may use "_"
// in place of "-". A file that fails to decode is ignored.
//
// Command-line flags override config file values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var m map[string]any

	// empty and malformed files configure nothing
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return config{}, nil //nolint:nilerr
	}

	out := config{}
	flatten(out, "", m)

	return out, nil
}

// config implements [kong.Resolver] for flattened YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := r[name]; ok {
			return value, nil
		}
	}

	return nil, nil
}

// flatten copies m into out, joining nested keys with "-".
// Kong parses numbers from strings, so they are formatted here.
func flatten(out config, prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "-" + k
		}

		switch t := v.(type) {
		case map[string]any:
			flatten(out, key, t)
		case uint64:
			out[key] = strconv.FormatUint(t, 10)
		case int64:
			out[key] = strconv.FormatInt(t, 10)
		case int:
			out[key] = strconv.Itoa(t)
		case float64:
			out[key] = strconv.FormatFloat(t, 'f', -1, 64)
		default:
			out[key] = v
		}
	}
}

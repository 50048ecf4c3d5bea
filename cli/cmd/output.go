package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/origin1tech/pargv/coerce"
)

// Output selects how a command prints its result.
type Output struct {
	Format string `default:"json" enum:"json,yaml,text" help:"Output format."            short:"o"`
	Indent int    `default:"2"                          help:"Indent width; 0 is compact."`
}

// write renders v, a map of named values, to w.
func (o Output) write(ctx context.Context, w io.Writer, v map[string]any) error {
	plain, _ := coerce.Plain(v).(map[string]any)

	switch o.Format {
	case "yaml":
		return o.writeYAML(ctx, w, plain)
	case "text":
		return writeText(w, plain)
	default:
		return o.writeJSON(w, plain)
	}
}

func (o Output) writeJSON(w io.Writer, v any) error {
	var (
		data []byte
		err  error
	)

	if o.Indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", o.Indent))
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

func (o Output) writeYAML(ctx context.Context, w io.Writer, v any) error {
	var opts []yaml.EncodeOption
	if o.Indent > 0 {
		opts = append(opts, yaml.Indent(o.Indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// writeText prints one "key value" line per entry, keys sorted and aligned.
func writeText(w io.Writer, v map[string]any) error {
	r := lipgloss.NewRenderer(w)
	keys := slices.Sorted(maps.Keys(v))

	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	keyStyle := r.NewStyle().Foreground(lipgloss.Color("6")).Width(width + 2)
	nullStyle := r.NewStyle().Foreground(lipgloss.Color("8"))

	for _, k := range keys {
		var text string

		switch val := v[k].(type) {
		case nil:
			text = nullStyle.Render("null")
		case string:
			text = val
		default:
			data, err := json.Marshal(val)
			if err != nil {
				return ErrJSONMarshal.Wrap(err)
			}

			text = string(data)
		}

		if _, err := fmt.Fprintln(w, keyStyle.Render(k)+text); err != nil {
			return err
		}
	}

	return nil
}

package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/origin1tech/pargv/pkg"
)

type testCLI struct {
	Parse Parse `cmd:""`
	Stats Stats `cmd:""`
	Token Token `cmd:""`
	Cast  Cast  `cmd:""`
}

// run parses args as a command line and runs the selected command,
// returning what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var (
		cli testCLI
		buf bytes.Buffer
	)

	parser, err := kong.New(&cli,
		kong.Writers(&buf, &buf),
		kong.Exit(func(code int) { t.Fatalf("exit(%d): %s", code, buf.String()) }),
	)
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", args, err)
	}

	ctx := WithContext(context.Background(), ktx)
	ktx.BindTo(ctx, (*context.Context)(nil))

	err = ktx.Run()

	return buf.String(), err
}

func decode(t *testing.T, out string) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("output %q is not JSON: %v", out, err)
	}

	return m
}

func TestToken(t *testing.T) {
	out, err := run(t, "token", "<age:number:5>")
	if err != nil {
		t.Fatalf("token error = %v", err)
	}

	m := decode(t, out)

	want := map[string]any{
		"key":      "age",
		"aliases":  nil,
		"flag":     false,
		"bool":     false,
		"required": true,
		"variadic": false,
		"type":     "number",
		"default":  float64(5),
	}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("got %v, want %v", m, want)
	}
}

func TestCast(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantValue any
		wantType  string
	}{
		{"auto array", []string{"cast", "a,b,c"}, []any{"a", "b", "c"}, "[]interface {}"},
		{"auto number", []string{"cast", "5"}, float64(5), "float64"},
		{"integer", []string{"cast", "--type", "integer", "12"}, float64(12), "int64"},
		{"list", []string{"cast", "--list", "fast,slow", "slow"}, "slow", "string"},
		{"expr", []string{"cast", "--type", "integer", "--expr", "value * 2", "21"}, float64(42), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("cast error = %v", err)
			}

			m := decode(t, out)

			if !reflect.DeepEqual(m["value"], tt.wantValue) {
				t.Errorf("value = %#v, want %#v", m["value"], tt.wantValue)
			}

			if tt.wantType != "" && m["type"] != tt.wantType {
				t.Errorf("type = %v, want %v", m["type"], tt.wantType)
			}
		})
	}

	if _, err := run(t, "cast", "--list", "fast,slow", "medium"); !errors.Is(err, pkg.ErrTypeMismatch) {
		t.Errorf("list mismatch error = %v", err)
	}
}

func TestParse(t *testing.T) {
	out, err := run(t, "parse",
		"-u", "generate.g <template> [name] --force.f",
		"g", "component.tpl", "-f",
	)
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}

	want := map[string]any{
		"$command":   "generate",
		"$arguments": []any{"component.tpl"},
		"$source":    []any{"g", "component.tpl", "-f"},
		"force":      true,
	}
	if m := decode(t, out); !reflect.DeepEqual(m, want) {
		t.Errorf("got %v, want %v", m, want)
	}

	_, err = run(t, "parse", "-u", "cmd <x>", "cmd")
	if !errors.Is(err, pkg.ErrValidation) {
		t.Errorf("missing argument error = %v", err)
	}
}

func TestStats(t *testing.T) {
	out, err := run(t, "stats", "-u", "cmd <a>", "cmd", "x", "y")
	if err != nil {
		t.Fatalf("stats error = %v", err)
	}

	m := decode(t, out)

	if m["command"] != "cmd" {
		t.Errorf("command = %v", m["command"])
	}

	if want := []any{"x", "y"}; !reflect.DeepEqual(m["normalized"], want) {
		t.Errorf("normalized = %v, want %v", m["normalized"], want)
	}

	if want := []any{"y"}; !reflect.DeepEqual(m["anonymous"], want) {
		t.Errorf("anonymous = %v, want %v", m["anonymous"], want)
	}
}

func TestParseSchema(t *testing.T) {
	schema := `
commands:
  - usage: download <url> [others...]
    defaults:
      others: [o1, o2]
  - usage: serve <root>
    options:
      - token: --port, -p <n>
        type: integer
        default: 8080
    whens:
      - {key: --port, demand: root}
`
	path := filepath.Join(t.TempDir(), "schema.yaml")
	if err := os.WriteFile(path, []byte(schema), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "parse", "--schema", path, "download", "http://x")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}

	if got, want := decode(t, out)["$arguments"], []any{"http://x", []any{"o1", "o2"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("$arguments = %v, want %v", got, want)
	}

	out, err = run(t, "parse", "--schema", path, "serve", "www", "-p", "9000")
	if err != nil {
		t.Fatalf("parse error = %v", err)
	}

	if got := decode(t, out)["port"]; got != float64(9000) {
		t.Errorf("port = %v", got)
	}
}

func TestLoadSchema(t *testing.T) {
	s, err := LoadSchema(strings.NewReader(""))
	if err != nil || len(s.Commands) != 0 {
		t.Errorf("empty schema = %+v, %v", s, err)
	}

	_, err = LoadSchema(strings.NewReader("commands: {"))
	if !errors.Is(err, ErrReadSchema) {
		t.Errorf("malformed schema error = %v", err)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer

	err := writeText(&buf, map[string]any{
		"name":  "bob",
		"count": 3,
		"none":  nil,
	})
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"count  3", "name   bob", "none   null"}

	if !reflect.DeepEqual(lines, want) {
		t.Errorf("got %q, want %q", lines, want)
	}
}

func TestOutputYAML(t *testing.T) {
	var buf bytes.Buffer

	err := Output{Format: "yaml", Indent: 2}.write(context.Background(), &buf, map[string]any{
		"$command": "serve",
		"port":     8080,
	})
	if err != nil {
		t.Fatal(err)
	}

	if got, want := buf.String(), "$command: serve\nport: 8080\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	type initCLI struct {
		Delimiter string `default:";"`
		Hidden    string `default:"x" hidden:""`

		Init Init `cmd:""`
	}

	for i, args := range [][]string{{"init"}, {"init"}, {"init", "--force"}} {
		parser, err := kong.New(&initCLI{}, kong.Vars{ConfigIdentifier: path})
		if err != nil {
			t.Fatal(err)
		}

		ktx, err := parser.Parse(args)
		if err != nil {
			t.Fatal(err)
		}

		ctx := WithContext(context.Background(), ktx)
		ktx.BindTo(ctx, (*context.Context)(nil))

		err = ktx.Run()

		switch {
		case i == 1 && !errors.Is(err, ErrFileExists):
			t.Errorf("second init error = %v, want %v", err, ErrFileExists)
		case i != 1 && err != nil:
			t.Errorf("init %v error = %v", args, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var conf map[string]any
	if err := yaml.Unmarshal(data, &conf); err != nil {
		t.Fatal(err)
	}

	if want := map[string]any{"delimiter": ";"}; !reflect.DeepEqual(conf, want) {
		t.Errorf("config = %v, want %v", conf, want)
	}
}

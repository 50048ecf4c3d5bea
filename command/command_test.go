package command

import (
	"errors"
	"reflect"
	"regexp"
	"slices"
	"testing"

	"github.com/origin1tech/pargv/coerce"
	"github.com/origin1tech/pargv/pkg"
)

func mustNew(t *testing.T, usage string, cfg Config) *Command {
	t.Helper()

	c, err := New(usage, cfg)
	if err != nil {
		t.Fatalf("New(%q) error = %v", usage, err)
	}

	return c
}

func TestAliasTable_SelfMapping(t *testing.T) {
	c := mustNew(t, "generate.g <template> [name] --force.f --out.o <dir>", Config{})
	c.Alias("--force", "F", "yes")

	table := c.AliasTable()

	for _, key := range table.Keys() {
		if got, ok := table.Key(key); !ok || got != key {
			t.Errorf("key %q resolves to %q, want itself", key, got)
		}

		if got, ok := c.AliasToKey(key); !ok || got != key {
			t.Errorf("AliasToKey(%q) = %q, want itself", key, got)
		}
	}

	for _, alias := range []string{"-f", "--force", "force", "-F", "--yes", "yes"} {
		if got, ok := c.AliasToKey(alias); !ok || got != "--force" {
			t.Errorf("AliasToKey(%q) = %q, %v; want --force", alias, got, ok)
		}
	}

	if got, _ := c.AliasToKey("0"); got != "template" {
		t.Errorf("AliasToKey(0) = %q, want template", got)
	}

	if got, _ := c.AliasToKey("1"); got != "name" {
		t.Errorf("AliasToKey(1) = %q, want name", got)
	}
}

func TestAliasTable_LastWriteWins(t *testing.T) {
	table := AliasTable{}
	table.Set("--force", "-f")
	table.Set("--fast", "-f")

	if got, _ := table.Key("-f"); got != "--fast" {
		t.Errorf("Key(-f) = %q, want --fast", got)
	}

	if got := table.Aliases("--fast"); !slices.Equal(got, []string{"-f"}) {
		t.Errorf("Aliases(--fast) = %v", got)
	}
}

func TestNew_Model(t *testing.T) {
	c := mustNew(t, "serve.s <root> [port:integer:8080] --verbose.v --host.h <host>", Config{})

	if c.Name() != "serve" || !slices.Equal(c.Aliases(), []string{"s"}) {
		t.Errorf("Name/Aliases = %q %v", c.Name(), c.Aliases())
	}

	if got := c.Positionals(); !slices.Equal(got, []string{"root", "port"}) {
		t.Errorf("Positionals() = %v", got)
	}

	if got := c.Flags(); !slices.Equal(got, []string{"--verbose", "--host"}) {
		t.Errorf("Flags() = %v", got)
	}

	if got := c.Bools(); !slices.Equal(got, []string{"--verbose"}) {
		t.Errorf("Bools() = %v", got)
	}

	if got := c.Demands(); !slices.Equal(got, []string{"root", "--host"}) {
		t.Errorf("Demands() = %v", got)
	}

	if got := c.Defaults(); !reflect.DeepEqual(got, map[string]any{"port": int64(8080)}) {
		t.Errorf("Defaults() = %v", got)
	}

	if got := c.Spec("port").Type; got != coerce.TypeInteger {
		t.Errorf("Spec(port).Type = %q", got)
	}

	if !c.ValueRequired("--host") || c.ValueRequired("--verbose") {
		t.Error("ValueRequired mismatch")
	}

	want := map[string]string{
		"root":      "Required argument root",
		"port":      "Optional argument port",
		"--verbose": "Optional flag --verbose",
		"--host":    "Required flag --host",
	}
	if got := c.Describes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Describes() = %v", got)
	}
}

func TestNew_GrammarErrorIsReported(t *testing.T) {
	var reported []error

	_, err := New("cmd [a...] <b>", Config{Report: func(err error) { reported = append(reported, err) }})
	if !errors.Is(err, pkg.ErrGrammar) {
		t.Fatalf("New() error = %v", err)
	}

	if len(reported) != 1 || reported[0] != err {
		t.Errorf("reported = %v", reported)
	}
}

func TestBuilder(t *testing.T) {
	c := mustNew(t, "build <target>", Config{})

	c.Option("--jobs, -j <n:integer>", WithDescribe("parallel jobs")).
		Option("--color", WithList(regexp.MustCompile(`^(auto|always|never)$`))).
		Alias("--jobs", "J").
		Describe("target", "what to build").
		Coerce("target", "debug,release").
		Demand("-j").
		When("--color", "-j", true).
		Default("-j", int64(2)).
		SetMinArguments(1).
		SetMaxOptions(3).
		Action(func([]any, *Result, *Command) error { return nil })

	if err := c.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	if got, _ := c.AliasToKey("-J"); got != "--jobs" {
		t.Errorf("AliasToKey(-J) = %q", got)
	}

	if got := c.Describes()["--jobs"]; got != "parallel jobs" {
		t.Errorf("describe = %q", got)
	}

	if re := c.Spec("target").List; re == nil || !re.MatchString("release") {
		t.Errorf("target list = %v", re)
	}

	if c.Spec("--color").List == nil {
		t.Error("WithList was not stored")
	}

	if !c.IsBool("--color") {
		t.Error("--color should be boolean")
	}

	want := []When{{"--color", "--jobs"}, {"--jobs", "--color"}}
	if got := c.Whens(); !reflect.DeepEqual(got, want) {
		t.Errorf("Whens() = %v, want %v", got, want)
	}

	if !c.IsDemanded("--jobs") || c.MinArguments() != 1 || c.MaxOptions() != 3 || !c.HasAction() {
		t.Error("builder settings not applied")
	}
}

func TestBuilder_UndefinedValues(t *testing.T) {
	tests := []struct {
		name string
		call func(*Command) *Command
	}{
		{"alias", func(c *Command) *Command { return c.Alias("--x") }},
		{"describe", func(c *Command) *Command { return c.Describe("", "text") }},
		{"coerce", func(c *Command) *Command { return c.Coerce("--x", nil) }},
		{"demand", func(c *Command) *Command { return c.Demand() }},
		{"when", func(c *Command) *Command { return c.When("--x", "") }},
		{"default", func(c *Command) *Command { return c.Default("--x", nil) }},
		{"action", func(c *Command) *Command { return c.Action(nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reported error

			c := mustNew(t, "cmd --x", Config{Report: func(err error) { reported = err }})

			if got := tt.call(c); got != c {
				t.Error("builder did not return the command")
			}

			if !errors.Is(c.Err(), pkg.ErrUndefinedValue) {
				t.Errorf("Err() = %v", c.Err())
			}

			if reported != c.Err() {
				t.Errorf("reported = %v", reported)
			}
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	global := mustNew(t, "--verbose.v --config.c <file>", Config{})
	global.Default("--config", "app.yaml")

	c := mustNew(t, "run <task>", Config{Global: global})

	if got, ok := c.AliasToKey("-v"); !ok || got != "--verbose" {
		t.Errorf("AliasToKey(-v) = %q, %v", got, ok)
	}

	if !c.IsBool("--verbose") || c.IsBool("--config") || !c.IsFlag("--config") {
		t.Error("global flag kinds not visible")
	}

	if global.Global() != nil {
		t.Error("default command must not have a global command")
	}
}

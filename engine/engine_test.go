package engine

import (
	"bytes"
	"errors"
	"os"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/origin1tech/pargv/command"
	"github.com/origin1tech/pargv/pkg"
)

// recorder collects the failures passed to an engine's error handler.
type recorder struct {
	msgs []string
	errs []error
}

func (r *recorder) handle(msg string, err error) {
	r.msgs = append(r.msgs, msg)
	r.errs = append(r.errs, err)
}

func newEngine(t *testing.T, opts ...Option) (*Engine, *recorder) {
	t.Helper()

	rec := &recorder{}

	return New(append([]Option{WithErrorHandler(rec.handle)}, opts...)...), rec
}

func mustCommand(t *testing.T, e *Engine, usage string) *command.Command {
	t.Helper()

	c, err := e.Command(usage)
	if err != nil {
		t.Fatalf("Command(%q) error = %v", usage, err)
	}

	return c
}

func TestNormalize(t *testing.T) {
	e, _ := newEngine(t)

	tests := []struct {
		name string
		argv []string
		want []string
	}{
		{"bundled short flags", []string{"-abc"}, []string{"-a", "-b", "-c"}},
		{"long flag with value", []string{"--name=bob"}, []string{"--name", "bob"}},
		{"short flag with value", []string{"-n=bob"}, []string{"-n", "bob"}},
		{"bundle with value", []string{"-ab=c"}, []string{"-a", "-b", "c"}},
		{"negative number", []string{"-5", "x"}, []string{"-5", "x"}},
		{"empty value", []string{"--name="}, []string{"--name", ""}},
		{"terminator", []string{"a", "--", "-abc", "--x=y"}, []string{"a", "--", "-abc", "--x=y"}},
		{"single string", []string{"generate component.tpl  -f"}, []string{"generate", "component.tpl", "-f"}},
		{"executable path", []string{os.Args[0], "run", "-v"}, []string{"run", "-v"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.Normalize(tt.argv); !slices.Equal(got, tt.want) {
				t.Errorf("Normalize(%q) = %q, want %q", tt.argv, got, tt.want)
			}
		})
	}
}

func TestNormalize_Delimiter(t *testing.T) {
	e, _ := newEngine(t, WithDelimiter(","))

	if got, want := e.Normalize([]string{"copy,a b,--force"}), []string{"copy", "a b", "--force"}; !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCommand_Registry(t *testing.T) {
	e, rec := newEngine(t)

	gen := mustCommand(t, e, "generate.g <template>")
	mustCommand(t, e, "serve <root>")

	def := mustCommand(t, e, "--verbose.v")
	if def != e.Default() || !def.IsDefault() {
		t.Error("token-first usage should extend the default command")
	}

	if got, ok := e.Find("g"); !ok || got != gen {
		t.Errorf("Find(g) = %v, %v", got, ok)
	}

	if _, ok := e.Find("nope"); ok {
		t.Error("Find(nope) should fail")
	}

	if got := len(e.Commands()); got != 2 {
		t.Errorf("len(Commands()) = %d, want 2", got)
	}

	_, err := e.Command("gen.g <x>")
	if !errors.Is(err, pkg.ErrGrammar) {
		t.Errorf("duplicate alias error = %v", err)
	}

	_, err = e.Command("bad [rest...] <x>")
	if !errors.Is(err, pkg.ErrGrammar) {
		t.Errorf("grammar error = %v", err)
	}

	if len(rec.errs) != 2 {
		t.Errorf("reported %d errors, want 2: %q", len(rec.errs), rec.msgs)
	}
}

func TestExitHandler(t *testing.T) {
	var (
		buf  bytes.Buffer
		code int
	)

	exitHandler(&buf, func(c int) { code = c })("missing required x", pkg.ErrValidation)

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	if got := buf.String(); !strings.Contains(got, "missing required x") || !strings.HasPrefix(got, pkg.Name) {
		t.Errorf("output = %q", got)
	}
}

func TestOnError(t *testing.T) {
	e, first := newEngine(t)
	mustCommand(t, e, "cmd <x>")

	second := &recorder{}
	e.OnError(second.handle)
	e.OnError(nil)

	if _, err := e.Parse("cmd"); err == nil {
		t.Fatal("Parse() should fail")
	}

	if len(first.errs) != 0 || len(second.errs) != 1 {
		t.Errorf("handlers called %d and %d times", len(first.errs), len(second.errs))
	}

	if !reflect.DeepEqual(second.msgs, []string{second.errs[0].Error()}) {
		t.Errorf("msgs = %q", second.msgs)
	}
}

func TestMatch(t *testing.T) {
	e, rec := newEngine(t)
	mustCommand(t, e, "cmd <a>")

	c, s := e.Match("cmd", "x", "y")
	if c.Name() != "cmd" {
		t.Errorf("command = %q", c.Name())
	}

	if !slices.Equal(s.Anonymous, []string{"y"}) {
		t.Errorf("Anonymous = %q", s.Anonymous)
	}

	if len(rec.errs) != 0 {
		t.Errorf("Match reported %v", rec.errs)
	}

	if c, _ := e.Match("-v"); !c.IsDefault() {
		t.Errorf("Match(-v) command = %q", c.Name())
	}
}

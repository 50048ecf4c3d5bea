package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	val, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%q) failed: %v", name, err)
	}

	return val
}

func TestResolve(t *testing.T) {
	config := `
log-level: debug
log:
  pretty: false
allow_anonymous: true
indent: 4
usage:
  - serve <port>
`

	resolver, err := resolve(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-pretty", false},
		{"allow-anonymous", true},
		{"indent", "4"},
		{"missing", nil},
	}

	for _, tt := range tests {
		if got := resolveFlag(t, resolver, tt.flag); got != tt.want {
			t.Errorf("%s = %#v, want %#v", tt.flag, got, tt.want)
		}
	}

	usage, ok := resolveFlag(t, resolver, "usage").([]any)
	if !ok || len(usage) != 1 || usage[0] != "serve <port>" {
		t.Errorf("usage = %#v", usage)
	}
}

func TestResolve_EmptyOrMalformed(t *testing.T) {
	for _, config := range []string{"", "log-level: [", "- not\n- a map\n"} {
		resolver, err := resolve(strings.NewReader(config))
		if err != nil {
			t.Fatalf("resolve(%q) failed: %v", config, err)
		}

		if got := resolveFlag(t, resolver, "log-level"); got != nil {
			t.Errorf("resolve(%q) log-level = %v, want nil", config, got)
		}
	}
}

func TestLogConfig_Scan(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want logConfig
	}{
		{
			"separate values",
			[]string{"--log-level", "debug", "parse", "--log-format", "json"},
			logConfig{Level: "debug", Format: "json"},
		},
		{
			"assigned values",
			[]string{"--log-level=warn", "--no-log-pretty", "--log-caller"},
			logConfig{Level: "warn", Caller: true},
		},
		{
			"negated assignment",
			[]string{"--log-pretty=true", "--no-log-caller=false"},
			logConfig{Pretty: true, Caller: true},
		},
		{
			"stops at terminator",
			[]string{"parse", "--", "--log-level", "trace"},
			logConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got logConfig

			got.scan(tt.args)

			if got != tt.want {
				t.Errorf("scan(%q) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

package grammar

import (
	"errors"
	"reflect"
	"testing"

	"github.com/origin1tech/pargv/coerce"
	"github.com/origin1tech/pargv/pkg"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		token string
		next  []string
		want  Token
	}{
		{
			token: "<template>",
			want:  Token{Key: "template", Required: true, Index: -1},
		},
		{
			token: "[name]",
			want:  Token{Key: "name", Index: -1},
		},
		{
			token: "[others...]",
			want:  Token{Key: "others", Variadic: true, Index: -1},
		},
		{
			token: "<age:number>",
			want:  Token{Key: "age", Required: true, Type: coerce.TypeNumber, Index: -1},
		},
		{
			token: "[port:integer:8080]",
			want: Token{
				Key: "port", Type: coerce.TypeInteger,
				Default: int64(8080), HasDefault: true, Index: -1,
			},
		},
		{
			token: "[url::http://x:80]",
			want: Token{
				Key: "url", Default: "http://x:80", HasDefault: true, Index: -1,
			},
		},
		{
			token: "--force.f",
			want: Token{
				Key: "--force", Aliases: []string{"-f"},
				Flag: true, Bool: true, Index: -1,
			},
		},
		{
			token: "-f.force.--force",
			want: Token{
				Key: "--force", Aliases: []string{"-f"},
				Flag: true, Bool: true, Index: -1,
			},
		},
		{
			token: "--verbose:boolean:true",
			want: Token{
				Key: "--verbose", Flag: true, Bool: true, Type: coerce.TypeBoolean,
				Default: true, HasDefault: true, Index: -1,
			},
		},
		{
			token: "--count:number",
			want:  Token{Key: "--count", Flag: true, Type: coerce.TypeNumber, Index: -1},
		},
		{
			token: " < spaced > ",
			want:  Token{Key: "spaced", Required: true, Index: -1},
		},
		{
			token: "--name.n",
			next:  []string{"<value:string:bob>"},
			want: Token{
				Key: "--name", Aliases: []string{"-n"}, Flag: true,
				Required: true, Type: coerce.TypeString,
				Default: "bob", HasDefault: true, Index: -1, As: "value",
			},
		},
		{
			token: "--tags",
			next:  []string{"[tags]"},
			want:  Token{Key: "--tags", Flag: true, Index: -1, As: "tags"},
		},
		{
			token: "<template>",
			next:  []string{"[ignored]"},
			want:  Token{Key: "template", Required: true, Index: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, err := ParseToken(tt.token, tt.next...)
			if err != nil {
				t.Fatalf("ParseToken() error = %v", err)
			}

			got.Token = ""
			if !reflect.DeepEqual(*got, tt.want) {
				t.Errorf("ParseToken() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseToken_Errors(t *testing.T) {
	tests := []struct {
		token string
		next  []string
	}{
		{token: "name"},
		{token: ""},
		{token: "<>"},
		{token: "--"},
		{token: "<age:bogus>"},
		{token: "<age:number:abc>"},
		{token: "--name", next: []string{"--other"}},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if _, err := ParseToken(tt.token, tt.next...); !errors.Is(err, pkg.ErrGrammar) {
				t.Errorf("ParseToken(%q) error = %v, want grammar error", tt.token, err)
			}
		})
	}
}

func TestParseToken_ErrorMessage(t *testing.T) {
	_, err := ParseToken("name")

	want := `grammar error: token "name" missing, invalid, or has unwanted space`
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %q", err, want)
	}
}

func TestNormalizeFlag(t *testing.T) {
	tests := map[string]string{
		"f":       "-f",
		"--f":     "-f",
		"force":   "--force",
		"-force":  "--force",
		"---x-y":  "--x-y",
		"--":      "",
		"no-deps": "--no-deps",
	}

	for in, want := range tests {
		if got := NormalizeFlag(in); got != want {
			t.Errorf("NormalizeFlag(%q) = %q, want %q", in, got, want)
		}
	}
}

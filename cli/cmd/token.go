package cmd

import (
	"context"

	"github.com/origin1tech/pargv/grammar"
)

// Token prints the descriptor parsed from one usage token.
type Token struct {
	Output `embed:""`

	Token string `arg:"" help:"Usage token, such as <age:number> or --force.f." name:"token"`
	Next  string `arg:"" help:"Value token following a flag."                   name:"next"  optional:""`
}

// Run executes the token command.
func (t *Token) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	var next []string
	if t.Next != "" {
		next = append(next, t.Next)
	}

	tok, err := grammar.ParseToken(t.Token, next...)
	if err != nil {
		return err
	}

	return t.write(ctx, stdout(ctx), tokenMap(tok))
}

func tokenMap(t *grammar.Token) map[string]any {
	m := map[string]any{
		"key":      t.Key,
		"aliases":  t.Aliases,
		"flag":     t.Flag,
		"bool":     t.Bool,
		"required": t.Required,
		"variadic": t.Variadic,
		"type":     string(t.Type),
	}

	if t.HasDefault {
		m["default"] = t.Default
	}

	if t.As != "" {
		m["as"] = t.As
	}

	return m
}

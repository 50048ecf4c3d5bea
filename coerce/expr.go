package coerce

import (
	"log/slog"
	"os"

	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/origin1tech/pargv/pkg"
)

// Expr compiles an expr-lang expression into a [Func].
//
// The expression sees the value being converted as "value" and its key as
// "key". The "mung" namespace provides PATH-list helpers:
//
//	mung.prefix(list, items...)          // prepend items to a PATH-style list
//	mung.prefixif(list, pred, items...)  // same, filtered by pred
//
// For example, `value * 2` doubles a number cast beforehand, and
// `mung.prefix(value, "/opt/bin")` prepends a directory to a PATH list.
func Expr(source string) (Func, error) {
	if source == "" {
		return nil, pkg.ErrUndefinedValue.Wrapf("empty coerce expression")
	}

	program, err := expr.Compile(source, expr.Env(exprEnv{}))
	if err != nil {
		return nil, pkg.ErrGrammar.Wrap(err).
			With(slog.String("source", source))
	}

	return func(value any, key string) (any, error) {
		return run(program, value, key)
	}, nil
}

func run(program *vm.Program, value any, key string) (any, error) {
	out, err := expr.Run(program, newExprEnv(value, key))
	if err != nil {
		return nil, err
	}

	return out, nil
}

// exprEnv is the environment of a coerce expression. Value is declared as
// an interface so expressions type-check against any cast result.
type exprEnv struct {
	Value any     `expr:"value"`
	Key   string  `expr:"key"`
	Mung  mungEnv `expr:"mung"`
}

type mungEnv struct {
	Prefix   func(list string, prefix ...string) string                              `expr:"prefix"`
	PrefixIf func(list string, predicate func(string) bool, prefix ...string) string `expr:"prefixif"`
}

func newExprEnv(value any, key string) exprEnv {
	return exprEnv{
		Value: value,
		Key:   key,
		Mung: mungEnv{
			Prefix:   mungPrefix,
			PrefixIf: mungPrefixIf,
		},
	}
}

func mungPrefix(list string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	list string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(list),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}

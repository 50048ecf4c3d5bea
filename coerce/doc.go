// Package coerce converts raw command-line strings into typed values.
//
// A value is converted either to an explicit [Type] with [Caster.Cast], to
// the first match of a regular expression with [Caster.CastList], or by
// auto-detection with [Auto]. Auto-detection tries, in order: object, json,
// regexp, array, date, number and boolean; the first strategy that matches
// wins and anything else stays a string.
//
//	coerce.Auto("5")        // float64(5)
//	coerce.Auto("a,b,c")    // []any{"a", "b", "c"}
//	coerce.Auto("a:1+b.c:2") // map[string]any{"a": "1", "b": map[string]any{"c": "2"}}
//
// User-defined conversions are expressed as a [Func], either written in Go
// or compiled from an expr-lang expression with [Expr].
package coerce

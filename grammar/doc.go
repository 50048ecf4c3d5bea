// Package grammar parses usage tokens and usage strings.
//
// A usage string such as
//
//	generate.g <template> [name:string:index.html] --force.f --tags <tags:array>
//
// names a command ("generate", alias "g") followed by its tokens:
//
//   - <name> is a required positional argument, [name] an optional one and
//     [name...] a variadic one absorbing every remaining argument.
//   - --name and -n are flags; dots separate aliases (--force.f).
//   - A flag followed by a <value> or [value] token takes a value;
//     otherwise it is boolean.
//   - An optional ":type" and ":default" follow the name.
//
// A usage string starting with a token belongs to the default command, and
// one starting with @path binds an external program.
package grammar

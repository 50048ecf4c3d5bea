// Package engine registers commands and parses argument lists against them.
//
// An [Engine] owns a registry of [command.Command] models and a default
// command that receives arguments naming no registered command. Flags of the
// default command are accepted by every command.
//
//	e := engine.New(engine.WithErrorHandler(func(msg string, err error) {
//		fmt.Fprintln(os.Stderr, msg)
//	}))
//
//	gen, _ := e.Command("generate.g <template> [name] --force.f")
//	gen.Default("name", "about.html")
//
//	res, err := e.Parse("generate", "component.tpl", "-f")
//
// Parsing runs in three steps. The argument list is normalized
// ([Engine.Normalize]), matched against the selected command
// ([command.Command.Stats]), then validated and coerced into a
// [command.Result]. Every failure is terminal and is passed to the error
// handler before being returned.
package engine

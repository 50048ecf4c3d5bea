// Package command holds the model of one command: its positional arguments,
// flags, alias table, defaults, demands, dependencies and coercions.
//
// A Command is built from a usage string and refined with chained builder
// calls:
//
//	cmd, err := command.New("generate.g <template> [name] --force.f", cfg)
//	cmd.Default("name", "about.html").
//		Default("-f", true).
//		When("--force", "template").
//		Action(run)
//
// Builder failures never panic. The first failure is kept (see
// [Command.Err]) and every failure is passed to the report hook given in
// [Config].
//
// [Command.Stats] classifies a normalized argument list against the model;
// the engine package turns those statistics into a [Result].
package command

// Package cli contains the command line interface for pargv.
//
// # Commands
//
//	pargv parse -u 'generate.g <template> [name] --force.f' g page.tpl -f
//	pargv stats -u 'serve <port:integer>' serve 8080 --extra
//	pargv token '--port.p <n:integer:8080>'
//	pargv cast --type date 2024-01-02
//	pargv init
//
// Commands may also be declared in a YAML schema given with --schema; see
// [cmd.Schema].
//
// # Configuration
//
// Flag defaults are read from config.yaml (and config.json) in the user
// configuration directory. The init command writes the current flag values
// to that file. See [resolve] for the accepted layout.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o pargv .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/pargv/pprof)
package cli

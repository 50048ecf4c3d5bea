// Package profile provides optional runtime profiling for the pargv command.
//
// Profiling is compiled in only with the "pprof" build tag, using
// [github.com/pkg/profile]. Without the tag, [Profiler.Start] returns a
// no-op and [Modes] is empty.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/pargv"}
//	defer p.Start().Stop()
//
// Profiles are written under Path with names matching the mode (cpu.pprof,
// mem.pprof, ...) and can be inspected with "go tool pprof".
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`

package profile

import "slices"

// Stopper stops a running profiler.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	// Mode is one of [Modes]; empty disables profiling.
	Mode string
	// Path is the output directory. Empty uses the library default.
	Path string
	// Quiet suppresses the profiler's own start/stop messages.
	Quiet bool
}

// Enabled reports whether p would start a profiler in this build.
func (p Profiler) Enabled() bool {
	return p.Mode != "" && slices.Contains(Modes(), p.Mode)
}

// Start starts profiling and returns its [Stopper].
// Start and Stop are always safe to call, even when profiling is compiled
// out or p.Mode is unknown.
func (p Profiler) Start() Stopper {
	if !p.Enabled() {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}

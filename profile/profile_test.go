package profile

import (
	"slices"
	"testing"
)

func TestProfiler_DisabledIsNoop(t *testing.T) {
	tests := []Profiler{
		{},
		{Mode: "no-such-mode"},
	}

	for _, p := range tests {
		if p.Enabled() {
			t.Errorf("%+v reports enabled", p)
		}

		p.Start().Stop()
	}
}

func TestModes_Sorted(t *testing.T) {
	if m := Modes(); !slices.IsSorted(m) {
		t.Errorf("Modes() not sorted: %v", m)
	}
}

package profile

import (
	"slices"
	"testing"
)

func TestModes(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("modes not sorted: %v", modes)
	}

	for _, m := range []string{"cpu", "heap", "trace"} {
		if !slices.Contains(modes, m) || !IsMode(m) {
			t.Errorf("missing mode %q", m)
		}
	}

	if IsMode("quiet") || IsMode("") {
		t.Error("quiet and empty are not modes")
	}
}

func TestProfiler_Options(t *testing.T) {
	tests := []struct {
		name string
		p    Profiler
		want int
	}{
		{"disabled", Profiler{}, 0},
		{"unknown", Profiler{Mode: "gpu", Path: "/tmp"}, 0},
		{"mode only", Profiler{Mode: "cpu"}, 2},
		{"with path", Profiler{Mode: "heap", Path: "/tmp"}, 3},
		{"quiet", Profiler{Mode: "mutex", Path: "/tmp", Quiet: true}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(tt.p.options()); got != tt.want {
				t.Errorf("expected %d options, got %d", tt.want, got)
			}
		})
	}
}

func TestProfiler_StartDisabled(t *testing.T) {
	for _, p := range []Profiler{{}, {Mode: "gpu"}} {
		if _, ok := p.Start().(ignore); !ok {
			t.Errorf("%+v: expected no-op handle", p)
		}
	}
}

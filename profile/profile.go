package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Tag is the build tag that enables profiling flags, and the name of the
// default output subdirectory.
const Tag = `pprof`

// Profiler describes one profiling session.
type Profiler struct {
	Mode  string // one of [Modes]
	Path  string // output directory; empty uses the working directory
	Quiet bool   // suppress pkg/profile's own log lines
}

// Modes returns the supported profiling modes, sorted.
//
//nolint:gochecknoglobals
var Modes = sync.OnceValue(
	func() []string {
		return slices.Sorted(maps.Keys(mode))
	},
)

//nolint:gochecknoglobals
var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// IsMode reports whether m names a supported profiling mode.
func IsMode(m string) bool {
	_, ok := mode[m]

	return ok
}

// Start begins profiling and returns a handle whose Stop ends it and flushes
// the profile. An empty or unknown mode returns a handle that does nothing.
func (p Profiler) Start() interface{ Stop() } {
	opts := p.options()
	if len(opts) == 0 {
		return ignore{}
	}

	return profile.Start(opts...)
}

// options translates p into pkg/profile options, or nil if p.Mode is not
// supported.
func (p Profiler) options() []func(*profile.Profile) {
	fn, ok := mode[p.Mode]
	if !ok {
		return nil
	}

	opts := []func(*profile.Profile){fn, profile.NoShutdownHook}

	if p.Path != "" {
		opts = append(opts, profile.ProfilePath(p.Path))
	}

	if p.Quiet {
		opts = append(opts, profile.Quiet)
	}

	return opts
}

type ignore struct{}

func (ignore) Stop() {}

// Package profile wraps [github.com/pkg/profile] for the xform command.
//
// The command only exposes profiling flags when built with the "pprof"
// build tag:
//
//	go build -tags pprof -o xform .
//	./xform --pprof-mode cpu apply "rotate 90" -s entities.yaml
//
// A [Profiler] names the mode and output directory; [Profiler.Start]
// returns a handle whose Stop flushes the profile. Supported modes are
// listed by [Modes]. Importing the package also registers the
// [net/http/pprof] handlers.
//
// Analyze the output with the go tool:
//
//	go tool pprof -http=: ~/.cache/xform/pprof/cpu.pprof
package profile

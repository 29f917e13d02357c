// Package cli contains the command line interface for xform.
//
// # Commands
//
//   - parse: build an expression and print its tree as text, tree, JSON or
//     YAML
//   - apply: read entity records, copy each through the expression between
//     two anchor blocks and write the result
//   - repl: build expressions interactively with alias completion
//   - init: write the current flag values to the configuration file
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory. Top-level keys set global flags; a key named after a command
// holds a map of that command's flags:
//
//	log-level: debug
//	max-depth: 32
//	apply:
//	  workers: 4
//	  remove: true
//
// Keys may use either hyphens or underscores. Values given on the command
// line take precedence.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/xform/pprof)
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o xform .
//
// # Examples
//
//	# Print the tree for a weighted alternation
//	xform parse -F tree '3%rotate 90,flip&offset 0 1 0'
//
//	# Copy entities from a region anchored at the origin to one at 100,64,0
//	xform apply -s entities.yaml --to 100,64,0 'rotate 90'
package cli

// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// A [Logger] is a small value type. The zero value discards everything, so
// library packages can hold one unconditionally and only pay for logging
// when a caller supplies a configured logger through an option.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("expression parsed", slog.String("input", "rotate 90,flip"))
//
// # Configuration
//
// Configuration is applied at creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a new logger from an existing one, overriding only
// the options given.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace sits below slog's Debug and is used
// for step-by-step parser and applier diagnostics.
//
// # Package Logger
//
// The package-level functions ([Info], [DebugContext], ...) write to a
// default logger that the command line reconfigures with [Config].
package log

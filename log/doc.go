// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Loggers are configured at creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithPretty(true))
//
// Attributes are always [slog.Attr] values, so callers choose the key and
// kind explicitly:
//
//	logger.Debug("matched command", slog.String("command", name))
//
// The zero [Logger] discards everything, which lets libraries accept a
// Logger without forcing output on their callers.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn] and [LevelError]. Messages below the configured level are
// discarded.
//
// # Formats
//
// [FormatText] (default) and [FormatJSON] map onto the slog handlers of the
// same name. With [WithPretty] both formats are colorized with lipgloss,
// which drops colors automatically when the output is not a terminal.
//
// # Package-level logger
//
// [Config], [Debug], [Info] and friends operate on a default logger that
// writes to standard error.
package log

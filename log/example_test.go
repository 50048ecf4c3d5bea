package log_test

import (
	"log/slog"
	"os"

	"github.com/origin1tech/pargv/log"
)

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithTimeLayout("none"))

	logger.Info("info message")
	logger.Warn("warning message", slog.String("key", "value"))
	// Output:
	// level=WARN msg="warning message" key=value
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none")).
		With(slog.String("command", "generate"))

	logger.Info("matched")
	// Output:
	// level=INFO msg=matched command=generate
}

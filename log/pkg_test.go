package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConfig_DefaultLogger(t *testing.T) {
	saved := Default()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = saved
		defaultMu.Unlock()
	})

	var buf bytes.Buffer
	Config(WithOutput(&buf), WithLevel(LevelDebug), WithTimeLayout("none"))

	Debug("from package", slog.String("k", "v"))
	With(slog.Int("n", 1)).Warn("derived")

	out := buf.String()
	for _, want := range []string{"msg=\"from package\"", "k=v", "n=1", "level=WARN"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}

	if strings.Contains(out, "time=") {
		t.Errorf("time layout none should drop timestamps: %s", out)
	}
}

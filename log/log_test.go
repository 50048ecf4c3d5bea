package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}

	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}
}

func TestLogger_ZeroValue_IsSilent(t *testing.T) {
	var logger Logger

	logger.Error("nothing happens")
	logger.Trace("nothing happens")

	if logger.Enabled(t.Context(), LevelError) {
		t.Error("zero logger reports enabled")
	}

	if got := logger.With(slog.String("k", "v")); got.Logger != nil {
		t.Error("With on zero logger should stay silent")
	}
}

func TestLogger_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithLevel(LevelTrace))

	logger.Trace("trace message")

	if !strings.Contains(buf.String(), "trace message") {
		t.Error("trace message not logged at trace level")
	}

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("trace level not rendered by name: %s", buf.String())
	}

	buf.Reset()
	logger = Make(&buf, WithLevel(LevelError))
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Error("info message logged when level is error")
	}

	logger.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at error level")
	}
}

func TestLogger_WithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Make(&buf, WithFormat(FormatJSON))
	logger.Info("test message", slog.String("key", "value"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if result["msg"] != "test message" {
		t.Errorf("expected msg=test message, got %v", result["msg"])
	}

	if result["key"] != "value" {
		t.Errorf("expected key=value, got %v", result["key"])
	}
}

func TestLogger_WithTimeLayout(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   bool
	}{
		{"rfc3339 named", "RFC3339", true},
		{"custom", "2006", true},
		{"none", "none", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithTimeLayout(tt.layout))
			logger.Info("test")

			if got := strings.Contains(buf.String(), "time="); got != tt.want {
				t.Errorf("time present = %v, want %v: %s", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_WithCaller(t *testing.T) {
	var buf bytes.Buffer
	Make(&buf, WithCaller(true)).Info("test message")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("caller info not attributed to test file: %s", buf.String())
	}

	buf.Reset()
	Make(&buf).Info("test message")

	if strings.Contains(buf.String(), "source") {
		t.Error("caller info included when disabled")
	}
}

func TestLogger_Wrap_KeepsBase(t *testing.T) {
	var buf bytes.Buffer
	base := Make(&buf, WithLevel(LevelDebug))
	wrapped := base.Wrap(WithFormat(FormatJSON))

	if wrapped.Level() != LevelDebug {
		t.Errorf("Wrap lost level: got %v", wrapped.Level())
	}

	if wrapped.Format() != FormatJSON {
		t.Errorf("Wrap did not apply format: got %v", wrapped.Format())
	}

	if base.Format() != FormatText {
		t.Error("Wrap mutated the base logger")
	}
}

func TestLogger_Pretty(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   []string
	}{
		{"text", FormatText, []string{"msg=hello", "user=alice", "req.id=7"}},
		{"json", FormatJSON, []string{`"msg": hello`, `"user": alice`, `"req.id": 7`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := Make(&buf, WithFormat(tt.format), WithPretty(true)).
				With(slog.String("user", "alice"))
			logger.Info("hello", slog.Group("req", slog.Int("id", 7)))

			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q: %s", want, buf.String())
				}
			}
		})
	}
}

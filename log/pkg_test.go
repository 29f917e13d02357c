package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func withDefault(t *testing.T, l Logger) {
	t.Helper()

	defaultMu.Lock()
	original := defaultLog
	defaultLog = l
	defaultMu.Unlock()

	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	})
}

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	var buf bytes.Buffer

	withDefault(t, Make(&buf, WithLevel(LevelTrace)))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Trace", func(m string, a ...slog.Attr) { TraceContext(t.Context(), m, a...) }, "TRACE"},
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
		{"InfoContext", func(m string, a ...slog.Attr) { InfoContext(t.Context(), m, a...) }, "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("package message", slog.String("key", "value"))

			output := buf.String()
			for _, want := range []string{"package message", tt.level, `"key":"value"`} {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q in %q", want, output)
				}
			}
		})
	}
}

func TestPackage_Config_Reconfigures(t *testing.T) {
	var buf bytes.Buffer

	withDefault(t, Make(&bytes.Buffer{}))

	Config(WithOutput(&buf), WithFormat(FormatText), WithLevel(LevelDebug))
	With(slog.String("component", "lang")).Debug("reconfigured")

	output := buf.String()
	if !strings.Contains(output, "component=lang") || !strings.Contains(output, "reconfigured") {
		t.Errorf("unexpected output %q", output)
	}
}

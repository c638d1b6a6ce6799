package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/yamdb/yamdb/internal/config"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var data map[string]any
		if err := json.Unmarshal([]byte(line), &data); err != nil {
			t.Fatalf("line is not valid JSON: %v\n%s", err, line)
		}
		out = append(out, data)
	}
	return out
}

func TestNewLogger_Formats(t *testing.T) {
	for _, format := range []config.LogFormat{config.LogFormatPretty, config.LogFormatJSON} {
		cfg := config.NewAppConfigWithOptions(
			config.WithLogLevel("INFO"),
			config.WithLogFormat(format),
		)

		logger := NewLogger(cfg)
		if logger == nil || logger.Slog() == nil {
			t.Fatalf("NewLogger(%s) returned an unusable logger", format)
		}
	}
}

func TestLogger_JSONLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "DEBUG")

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	lines := decodeLines(t, &buf)
	if len(lines) != 4 {
		t.Fatalf("expected 4 log lines, got %d", len(lines))
	}

	wantLevels := []string{"debug", "info", "warn", "error"}
	for i, data := range lines {
		if data["level"] != wantLevels[i] {
			t.Errorf("line %d level = %v, want %s", i, data["level"], wantLevels[i])
		}
		if _, ok := data["time"]; !ok {
			t.Errorf("line %d has no timestamp", i)
		}
	}
}

func TestLogger_JSONAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	logger.With("kind", "review").Slog().WithGroup("row").Info("row skipped",
		"line", 3,
		"error", errors.New("score out of range"),
		slog.Group("ref", slog.Int64("title_id", 5)),
	)

	data := decodeLines(t, &buf)[0]
	if data["message"] != "row skipped" {
		t.Errorf("message = %v", data["message"])
	}
	if data["kind"] != "review" {
		t.Errorf("kind = %v", data["kind"])
	}
	if data["row.line"] != float64(3) {
		t.Errorf("row.line = %v", data["row.line"])
	}
	if data["row.error"] != "score out of range" {
		t.Errorf("row.error = %v", data["row.error"])
	}
	if data["row.ref.title_id"] != float64(5) {
		t.Errorf("row.ref.title_id = %v", data["row.ref.title_id"])
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "WARN")

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	if lines := decodeLines(t, &buf); len(lines) != 2 {
		t.Errorf("expected 2 log lines, got %d", len(lines))
	}
}

func TestLogger_WithContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	ctx := WithRunID(context.Background(), "run-123")
	logger.WithContext(ctx).Info("import started")

	data := decodeLines(t, &buf)[0]
	if data["run_id"] != "run-123" {
		t.Errorf("run_id = %v, want run-123", data["run_id"])
	}
}

func TestLogger_WithContext_NoRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, config.LogFormatJSON, "INFO")

	if got := logger.WithContext(context.Background()); got != logger {
		t.Error("WithContext without a run ID should return the same logger")
	}
	logger.Info("test message")

	if _, ok := decodeLines(t, &buf)[0]["run_id"]; ok {
		t.Error("should not have run_id when not set")
	}
}

func TestRunID(t *testing.T) {
	if id := RunID(context.Background()); id != "" {
		t.Errorf("RunID() = %q, want empty", id)
	}
	if id := RunID(WithRunID(context.Background(), "abc")); id != "abc" {
		t.Errorf("RunID() = %q, want abc", id)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConfigure(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	cfg := config.NewAppConfigWithOptions(
		config.WithLogLevel("DEBUG"),
		config.WithLogFormat(config.LogFormatJSON),
	)

	logger := Configure(cfg)
	if slog.Default() != logger.Slog() {
		t.Error("Configure() should install the slog default")
	}
}

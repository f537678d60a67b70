package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoggerAddsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: ComponentApp, Output: &buf})

	logger.WithComponent(ComponentRecurring).InfoContext(context.Background(), "Pass done", FieldGenerated, 2)

	out := buf.String()
	if !strings.Contains(out, "component=recurring") || !strings.Contains(out, "generated=2") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Component: ComponentCLI, Output: &buf})

	logger.DebugContext(context.Background(), "hidden")
	logger.WarnContext(context.Background(), "shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestLogFields(t *testing.T) {
	fields := NewFields().
		WithComponent(ComponentStorage).
		WithOperation(OpSave).
		WithError(nil)

	if _, ok := fields[FieldError]; ok {
		t.Errorf("nil error must not add a field")
	}
	if got := len(fields.ToSlice()); got != 4 {
		t.Errorf("expected 4 slice entries, got %d", got)
	}
}

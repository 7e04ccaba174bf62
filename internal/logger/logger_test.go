package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		wantErr  bool
	}{
		{"debug", LevelDebug, false},
		{"DEBUG", LevelDebug, false},
		{"info", LevelInfo, false},
		{"", LevelInfo, false},
		{"warn", LevelWarn, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{" ERROR ", LevelError, false},
		{"verbose", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr && err == nil {
				t.Errorf("expected error for input %q", tt.input)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error for input %q: %v", tt.input, err)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("expected %v, got %v for input %q", tt.expected, got, tt.input)
			}
		})
	}
}

func TestLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetLevel(LevelWarn)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("messages below WARN should be dropped, got %q", output)
	}
	if !strings.Contains(output, "warn message") || !strings.Contains(output, "error message") {
		t.Errorf("WARN and ERROR should be logged, got %q", output)
	}
}

func TestLogger_Prefix(t *testing.T) {
	var buf bytes.Buffer
	l := New()
	l.SetOutput(&buf)
	l.SetPrefix("wizard")

	l.Info("moved to %s", "customer")

	if !strings.Contains(buf.String(), "[INFO] wizard: moved to customer") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLogger_EnvVarLogLevel(t *testing.T) {
	t.Setenv("DISPATCH_LOG_LEVEL", "debug")

	l := New()
	if l.level != LevelDebug {
		t.Errorf("expected debug level from env var, got %v", l.level)
	}
}

func TestLogger_EnvVarLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dispatch.log")
	t.Setenv("DISPATCH_LOG_FILE", path)

	l := New()
	l.Info("saved service call")
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "saved service call") {
		t.Error("log file should contain the message")
	}
}

func TestLogger_Configure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configured.log")

	l := New()
	if err := l.Configure("error", path); err != nil {
		t.Fatalf("configure: %v", err)
	}
	defer l.Close()

	l.Warn("dropped")
	l.Error("kept")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(content), "dropped") {
		t.Error("warn should be filtered at error level")
	}
	if !strings.Contains(string(content), "kept") {
		t.Error("error message should be written")
	}

	if err := l.Configure("loud", ""); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestLogger_CloseWithoutFile(t *testing.T) {
	l := New()
	if err := l.Close(); err != nil {
		t.Errorf("unexpected error closing logger: %v", err)
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	Default.SetOutput(&buf)
	Default.SetLevel(LevelDebug)

	Debug("debug %s", "test")
	Info("info %s", "test")
	Warn("warn %s", "test")
	Error("error %s", "test")

	output := buf.String()
	for _, want := range []string{"debug test", "info test", "warn test", "error test"} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q", want)
		}
	}
}

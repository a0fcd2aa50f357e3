package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/msgkeep/cli/cmd/msgkeep/cli/paths"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInit_WritesJSONToLogFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(paths.CacheDirEnvVar, tmpDir)
	t.Setenv(LogLevelEnvVar, "debug")
	t.Cleanup(resetLogger)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	ctx := WithComponent(context.Background(), "test")
	ctx = WithHook(ctx, "lint")
	Info(ctx, "hello", slog.String("k", "v"))
	Close()

	data, err := os.ReadFile(paths.LogPath())
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	line := string(data)
	for _, want := range []string{`"msg":"hello"`, `"component":"test"`, `"hook":"lint"`, `"k":"v"`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %s: %s", want, line)
		}
	}
}

func TestSetLogLevelGetter_UsedWhenEnvUnset(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(paths.CacheDirEnvVar, tmpDir)
	t.Setenv(LogLevelEnvVar, "")
	t.Cleanup(resetLogger)
	t.Cleanup(func() { SetLogLevelGetter(nil) })

	SetLogLevelGetter(func() string { return "error" })
	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Info(context.Background(), "should be filtered")
	Close()

	data, err := os.ReadFile(paths.LogPath())
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("reading log file: %v", err)
	}
	if strings.Contains(string(data), "should be filtered") {
		t.Error("INFO message logged despite error level from settings getter")
	}
}

func TestClose_SafeWithoutInit(t *testing.T) {
	resetLogger()
	Close()
	Close()
}

package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("hidden debug line")
	Info("week fetched", "pact", "p1")

	data, err := os.ReadFile(FilePath(configDir))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "week fetched") {
		t.Errorf("log file = %q, want info line", data)
	}
	if strings.Contains(string(data), "hidden debug line") {
		t.Error("debug line written outside debug mode")
	}
}

func TestInitDebugModeMirrorsToStderr(t *testing.T) {
	var stderr bytes.Buffer
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir(), Stderr: &stderr}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Debug("request sent", "path", "/pact/active")
	if !strings.Contains(stderr.String(), "request sent") {
		t.Errorf("stderr = %q, want debug line", stderr.String())
	}
}

func TestFilePath(t *testing.T) {
	got := FilePath("/tmp/pact")
	want := filepath.Join("/tmp/pact", "logs", "pact.log")
	if got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

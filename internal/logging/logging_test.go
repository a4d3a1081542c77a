package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/nikbrunner/finwatch/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := logging.ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_NoOutputsIsNop(t *testing.T) {
	logger := logging.NewLogger(logging.LogConfig{Level: "debug"})
	if logger.GetLevel() != zerolog.Disabled {
		t.Errorf("level = %v, want disabled", logger.GetLevel())
	}
}

func TestNewLogger_Console(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.LogConfig{
		Level:   "warn",
		Console: true,
		Output:  &buf,
	})

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "finwatch.log")
	logger := logging.NewLogger(logging.LogConfig{
		Level:    "debug",
		File:     true,
		FilePath: path,
		MaxSize:  1,
	})

	logging.WithWatchlist(logger, "wl-1").Debug().Msg("saved")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"watchlist":"wl-1"`) {
		t.Errorf("log missing watchlist field: %s", data)
	}
}

func TestWithCommand(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logging.WithCommand(logger, "add").Info().Msg("x")
	if !strings.Contains(buf.String(), `"command":"add"`) {
		t.Errorf("got %s", buf.String())
	}
}

func TestDefaultLogConfig(t *testing.T) {
	cfg := logging.DefaultLogConfig()
	if cfg.Console {
		t.Error("console logging should be off by default")
	}
	if !strings.HasSuffix(cfg.FilePath, filepath.Join("finwatch", "logs", "finwatch.log")) {
		t.Errorf("FilePath = %q", cfg.FilePath)
	}
}

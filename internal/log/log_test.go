package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmcdole/marquee/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetupLoggerWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "marquee.log")
	logger, err := SetupLogger(&config.LoggingConfig{File: path, Level: "debug"}, Options{Version: "1.2.3"})
	if err != nil {
		t.Fatalf("SetupLogger() error: %v", err)
	}

	logger.Debug("hello", "title_id", 42)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) || !strings.Contains(string(data), `"title_id":42`) {
		t.Errorf("log output = %s, want JSON record with msg and title_id", data)
	}
	if !strings.Contains(string(data), `"version":"1.2.3"`) {
		t.Errorf("log output = %s, want version attribute", data)
	}
}

func TestDebugOption(t *testing.T) {
	tests := []struct {
		name       string
		level      string
		debug      bool
		wantDebug  bool
		wantSource bool
	}{
		{"config level", "info", false, false, false},
		{"config debug", "debug", false, true, false},
		{"flag overrides level", "error", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level, Options{Debug: tt.debug})
			logger.Debug("scroll frame")

			if got := buf.Len() > 0; got != tt.wantDebug {
				t.Fatalf("debug record written = %v, want %v", got, tt.wantDebug)
			}
			if !tt.wantDebug {
				return
			}
			var rec map[string]any
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("record is not JSON: %v", err)
			}
			if _, ok := rec["source"]; ok != tt.wantSource {
				t.Errorf("source present = %v, want %v", ok, tt.wantSource)
			}
			if _, ok := rec["pid"]; !ok {
				t.Error("record has no pid")
			}
		})
	}
}

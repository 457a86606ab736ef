package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(zapcore.AddSync(&buf), zapcore.InfoLevel)

	logger.Infow("Parsed subtitle file", "cues", 3)
	logger.Debugw("hidden at info level")
	_ = logger.Sync()

	out := buf.String()
	if !strings.Contains(out, "Parsed subtitle file") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, `"cues": 3`) {
		t.Errorf("expected cues field in output, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug entry should be filtered, got %q", out)
	}
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Warnw("nothing happens", "key", "value")
}

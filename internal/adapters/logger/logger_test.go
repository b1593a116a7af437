package logger_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.trai.ch/rig/internal/adapters/logger"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New()
	l.SetOutput(&buf)

	l.Info("registered action")
	l.Warn("formatter not found, skipping")
	l.Error(errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "registered action") {
		t.Errorf("missing info message in output: %s", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "formatter not found") {
		t.Errorf("missing warn message in output: %s", out)
	}
	if !strings.Contains(out, "level=ERROR") || !strings.Contains(out, "boom") {
		t.Errorf("missing error message in output: %s", out)
	}
}

package charmlog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Writer: &buf, Level: "WARN", Format: "logfmt"})

	l.Info("hidden")
	l.Warn("shown", "id", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "id=7")
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Writer: &buf, Level: "chatty", Format: "logfmt"})

	l.Debug("debug line")
	l.Info("info line")

	out := buf.String()
	assert.NotContains(t, out, "debug line")
	assert.Contains(t, out, "info line")
}

func TestNewLogger_Prefix(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Options{Writer: &buf, Level: "DEBUG", Prefix: "todo", Format: "logfmt"})

	l.Error("boom", "error", "disk full")

	out := buf.String()
	assert.Contains(t, out, "prefix=todo")
	assert.Contains(t, out, `error="disk full"`)
}

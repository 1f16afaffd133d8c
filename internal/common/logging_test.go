package common

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestNewLogger_FluentAPI(t *testing.T) {
	logger := NewLogger("error")
	logger.Info().Str("key", "value").Msg("test message")
	logger.Warn().Int("count", 42).Msg("warning")
	logger.Error().Err(nil).Msg("error message")
	logger.Debug().Bool("ok", true).Msg("debug")
}

func TestNewLoggerWithOutput_WritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", &buf)
	logger.Info().Str("tool", "canvas_list_courses").Msg("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestNewSilentLogger_DoesNotWriteToGlobalWriters(t *testing.T) {
	var buf bytes.Buffer
	_ = NewLoggerWithOutput("info", &buf)
	buf.Reset()

	silent := NewSilentLogger()
	silent.Info().Str("key", "value").Msg("this should NOT appear")
	silent.Error().Msg("this should NOT appear either")

	if buf.Len() > 0 {
		t.Errorf("silent logger wrote %d bytes to global writer: %s", buf.Len(), buf.String())
	}
}

func TestNewLogger_DoesNotWriteToStdout(t *testing.T) {
	// stdout is the MCP JSON-RPC channel in stdio mode.
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	logger := NewLogger("info")
	logger.Info().Str("tool", "test").Msg("this must not go to stdout")

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	r.Close()

	if buf.Len() > 0 {
		t.Errorf("logger wrote %d bytes to stdout: %s", buf.Len(), buf.String())
	}
}

func TestWithCorrelationId_ReturnsNewLogger(t *testing.T) {
	logger := NewSilentLogger()
	child := logger.WithCorrelationId("req-1")
	if child == nil || child == logger {
		t.Fatal("expected a distinct logger")
	}
	child.Info().Msg("tagged")
}

func TestGetFullVersion(t *testing.T) {
	v := GetFullVersion()
	if !strings.Contains(v, Version) {
		t.Errorf("expected %q in %q", Version, v)
	}
}

package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn", false)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "loud", false)
	logger.Debug().Msg("debug")
	logger.Info().Msg("info")
	if out := buf.String(); strings.Contains(out, "debug") || !strings.Contains(out, `"message":"info"`) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(NewWithWriter(&buf, "info", false), "ws")
	logger.Info().Msg("hello")
	if !strings.Contains(buf.String(), `"component":"ws"`) {
		t.Fatalf("missing component field in %q", buf.String())
	}
}

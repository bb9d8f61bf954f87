package trace_test

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/arnegrin/lc3vm/internal/trace"
)

func TestLoggerStepRespectsFrom(t *testing.T) {
	var buf bytes.Buffer
	l := trace.NewLogger(log.New(&buf, "", 0), 0x3002)

	l.Step(0x3000, 0xF025) // before From, suppressed
	l.Step(0x3002, 0x1023) // at From, logged
	l.Step(0x3003, 0xF025) // after From, logged

	out := buf.String()
	if strings.Contains(out, "0x3000") {
		t.Errorf("expected address before From to be suppressed, got %q", out)
	}
	if !strings.Contains(out, "0x3002") || !strings.Contains(out, "0x3003") {
		t.Errorf("expected addresses at and after From to be logged, got %q", out)
	}
}

func TestLoggerMemReadOnlyLogsKeyboard(t *testing.T) {
	var buf bytes.Buffer
	l := trace.NewLogger(log.New(&buf, "", 0), 0)

	l.Step(0x3000, 0xF025) // starts logging
	buf.Reset()

	l.MemRead(0x3100, 0x42)
	if buf.Len() != 0 {
		t.Errorf("expected non-keyboard read to be silent, got %q", buf.String())
	}

	l.MemRead(0xFE00, 0x8000)
	if !strings.Contains(buf.String(), "keyboard") {
		t.Errorf("expected keyboard read to be logged, got %q", buf.String())
	}
}

func TestLoggerSuppressedBeforeStart(t *testing.T) {
	var buf bytes.Buffer
	l := trace.NewLogger(log.New(&buf, "", 0), 0x4000)

	l.MemWrite(0x3500, 0x1)
	if buf.Len() != 0 {
		t.Errorf("expected writes before logging starts to be silent, got %q", buf.String())
	}
}

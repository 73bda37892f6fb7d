package observability

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("ignored", String("k", "v"))
	l.Info("ignored")
	l.Warn("ignored")
	l.Error("ignored", Error("err", errors.New("boom")))
	if l2 := l.With(Int("n", 1)); l2 != (NopLogger{}) {
		t.Fatalf("nop With should return a nop logger")
	}
}

func TestStdLoggerEmitsFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(log.New(&buf, "", 0), false)

	l.Info("realized page set", Int("slots", 3), String("source", "abc"))

	out := buf.String()
	if !strings.Contains(out, "INFO realized page set") {
		t.Errorf("missing level and message: %q", out)
	}
	if !strings.Contains(out, "slots=3") || !strings.Contains(out, "source=abc") {
		t.Errorf("missing fields: %q", out)
	}
}

func TestStdLoggerDebugGate(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(log.New(&buf, "", 0), false)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug emitted while disabled: %q", buf.String())
	}

	l = NewStdLogger(log.New(&buf, "", 0), true)
	l.Debug("shown", Int("slot", 0))
	if !strings.Contains(buf.String(), "DEBUG shown slot=0") {
		t.Errorf("debug missing while enabled: %q", buf.String())
	}
}

func TestStdLoggerWithBindsFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(log.New(&buf, "", 0), false).With(String("session", "s1"))

	l.Warn("slow export", Int("pages", 120))

	out := buf.String()
	if !strings.Contains(out, "session=s1") || !strings.Contains(out, "pages=120") {
		t.Errorf("bound or call fields missing: %q", out)
	}
}

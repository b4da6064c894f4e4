package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, verbose bool) *Logger {
	return NewWithOptions("test", VerboseFunc(func() bool { return verbose }), Options{
		Writer:  buf,
		NoColor: true,
	})
}

func TestLogger_VerboseGating(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, false)

	log.Debug("hidden %d", 1)
	log.Info("also hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output when not verbose, got %q", buf.String())
	}

	log.Warn("shown %s", "warn")
	log.Error("shown error")

	out := buf.String()
	if !strings.Contains(out, "shown warn") {
		t.Errorf("expected warn line in output, got %q", out)
	}
	if !strings.Contains(out, "shown error") {
		t.Errorf("expected error line in output, got %q", out)
	}
	if !strings.Contains(out, "component=test") {
		t.Errorf("expected component attribute, got %q", out)
	}
}

func TestLogger_VerboseFields(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, true)

	log.InfoWithFields("request finished", []Field{Status(200), F("path", "/analyze")})

	out := buf.String()
	for _, want := range []string{"request finished", "status=200", "path=/analyze"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got %q", want, out)
		}
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, true).WithComponent("client")

	log.WarnWithFields("call failed", []Field{Error(errors.New("boom"))})

	out := buf.String()
	if !strings.Contains(out, "component=client") {
		t.Errorf("expected renamed component, got %q", out)
	}
	if !strings.Contains(out, "boom") {
		t.Errorf("expected error field, got %q", out)
	}
}

func TestLogger_NoArgsKeepsPercent(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, false)

	log.Warn("100% done")
	if !strings.Contains(buf.String(), "100% done") {
		t.Errorf("expected literal message, got %q", buf.String())
	}
}

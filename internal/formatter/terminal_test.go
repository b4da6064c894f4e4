package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/yildizm/SentiView/internal/analysis"
	"github.com/yildizm/SentiView/internal/controller"
)

func resultState(t *testing.T, body string) controller.ViewState {
	t.Helper()
	result, err := analysis.ParseResult([]byte(body))
	if err != nil {
		t.Fatalf("ParseResult failed: %v", err)
	}
	return controller.ShowResult(result)
}

func TestTerminalFormat_Result(t *testing.T) {
	state := resultState(t, `{"text":"great","sentiment":"Positive","percentage":"97.5%","meta":{"model":"vader"}}`)

	out, err := NewTerminal(false).Format(state)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	output := string(out)

	for _, want := range []string{"Positive Sentiment", "text", "great", "percentage", "confidence", "Raw response", `"model": "vader"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	// Nested objects only appear in the raw block, not as a tree row
	if strings.Count(output, "meta") != 1 {
		t.Errorf("expected meta to appear once, output:\n%s", output)
	}

	badgePos := strings.Index(output, "Positive Sentiment")
	rawPos := strings.Index(output, "Raw response")
	if badgePos > rawPos {
		t.Errorf("badge should come before raw output")
	}
}

func TestTerminalFormat_Error(t *testing.T) {
	out, err := NewTerminal(false).Format(controller.ShowError("Text too long"))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(out), "Text too long") {
		t.Errorf("expected error message, got %q", out)
	}
}

func TestTerminalFormat_Idle(t *testing.T) {
	out, err := NewTerminal(false).Format(controller.Idle())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected no output for idle, got %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	f := NewJSON()

	out, err := f.Format(resultState(t, `{"sentiment":"Positive","score":0.87}`))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if string(out) != "{\n  \"sentiment\": \"Positive\",\n  \"score\": 0.87\n}" {
		t.Errorf("unexpected JSON output %q", out)
	}

	out, err = f.Format(controller.ShowError("Analysis failed"))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	var errOut ErrorOutput
	if err := json.Unmarshal(out, &errOut); err != nil {
		t.Fatalf("error output is not JSON: %v", err)
	}
	if errOut.Error != "Analysis failed" {
		t.Errorf("unexpected error output %+v", errOut)
	}

	out, err = f.Format(controller.Loading())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(out), `"state": "loading"`) {
		t.Errorf("unexpected status output %q", out)
	}
}

func TestMarkdownFormat(t *testing.T) {
	out, err := NewMarkdown().Format(resultState(t, `{"sentiment":"Negative","note":"a|b"}`))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	output := string(out)

	for _, want := range []string{"## Negative Sentiment", "| Field | Value |", `a\|b`, "```json"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}

	out, err = NewMarkdown().Format(controller.ShowError("Something went wrong"))
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(out), "> Something went wrong") {
		t.Errorf("expected blockquote error, got %q", out)
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"", "text", "json", "markdown", "md"} {
		if _, err := New(format, false); err != nil {
			t.Errorf("New(%q) failed: %v", format, err)
		}
	}
	if _, err := New("csv", false); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseConfidence(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{raw: "97.5%", want: 0.975, wantOK: true},
		{raw: "0.42", want: 0.42, wantOK: true},
		{raw: "87", want: 0.87, wantOK: true},
		{raw: "1", want: 1, wantOK: true},
		{raw: "-0.3", wantOK: false},
		{raw: "150%", wantOK: false},
		{raw: "high", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := parseConfidence(tt.raw)
		if ok != tt.wantOK {
			t.Errorf("parseConfidence(%q) ok = %v, want %v", tt.raw, ok, tt.wantOK)
			continue
		}
		if ok && (got-tt.want > 1e-9 || tt.want-got > 1e-9) {
			t.Errorf("parseConfidence(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate changed short string: %q", got)
	}
	if got := truncate("abcdefghij", 5); got != "abcd…" {
		t.Errorf("truncate = %q", got)
	}
}

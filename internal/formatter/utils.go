package formatter

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yildizm/SentiView/internal/analysis"
	"github.com/yildizm/SentiView/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// sentimentEmoji returns the badge emoji for a sentiment class
func sentimentEmoji(class string, opts *termfmt.TerminalOptions) string {
	if opts != nil && !opts.Emoji {
		return "[" + strings.ToUpper(class) + "]"
	}
	return emoji.ForSentiment(class)
}

// confidenceOf derives a 0..1 confidence from the usual result fields:
// "percentage" ("97.5%"), "confidence" or "score" (0..1, or 0..100).
func confidenceOf(fields []analysis.Field) (float64, bool) {
	for _, key := range []string{"percentage", "confidence", "score"} {
		for _, field := range fields {
			if field.Key != key {
				continue
			}
			if v, ok := parseConfidence(field.Scalar()); ok {
				return v, true
			}
		}
	}
	return 0, false
}

func parseConfidence(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	percent := strings.HasSuffix(raw, "%")
	raw = strings.TrimSuffix(raw, "%")

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	if percent || v > 1 {
		v /= 100
	}
	if v > 1 {
		return 0, false
	}
	return v, true
}

// isScalar reports whether a raw JSON value is a string, number, bool or null
func isScalar(value json.RawMessage) bool {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 {
		return false
	}
	return trimmed[0] != '{' && trimmed[0] != '['
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

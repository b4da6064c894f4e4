package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/SentiView/internal/analysis"
	"github.com/yildizm/SentiView/internal/controller"
	"github.com/yildizm/SentiView/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(state controller.ViewState) ([]byte, error) {
	var b strings.Builder

	switch state.Kind {
	case controller.KindResult:
		if state.Result == nil {
			break
		}
		f.writeBadge(&b, state.Result)
		f.writeFields(&b, state.Result)
		f.writeRaw(&b, state.Result)
	case controller.KindError:
		fmt.Fprintf(&b, "%s %s\n", f.symbol("error"), state.Message)
	case controller.KindLoading:
		fmt.Fprintf(&b, "%s Analyzing...\n", emoji.GetEmoji("loading"))
	}

	return []byte(b.String()), nil
}

// writeBadge writes the sentiment badge line
func (f *terminalFormatter) writeBadge(b *strings.Builder, result *analysis.Result) {
	fmt.Fprintf(b, "%s %s\n\n", sentimentEmoji(result.BadgeClass(), f.opts), result.BadgeText())
}

// writeFields writes scalar top-level fields as a tree, with a confidence bar when one can be derived
func (f *terminalFormatter) writeFields(b *strings.Builder, result *analysis.Result) {
	fields, err := result.Fields()
	if err != nil {
		return
	}

	items := make([]termfmt.TreeItem, 0, len(fields))
	for _, field := range fields {
		if !isScalar(field.Value) {
			continue
		}
		items = append(items, termfmt.TreeItem{Label: field.Key, Value: truncate(field.Scalar(), 60)})
	}

	if confidence, ok := confidenceOf(fields); ok {
		items = append(items, termfmt.TreeItem{
			Label: "confidence",
			Value: fmt.Sprintf("%s %.0f%%", termfmt.CreateConfidenceBar(confidence, f.opts), confidence*100),
		})
	}

	if len(items) == 0 {
		return
	}
	items[len(items)-1].Last = true

	b.WriteString(termfmt.GetEmoji("statistics", f.opts) + " Details\n")
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeRaw writes the pretty-printed result object
func (f *terminalFormatter) writeRaw(b *strings.Builder, result *analysis.Result) {
	b.WriteString("Raw response\n")
	b.WriteString(result.Pretty())
	b.WriteString("\n")
}

func (f *terminalFormatter) symbol(key string) string {
	return termfmt.GetEmoji(key, f.opts)
}

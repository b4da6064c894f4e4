package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/SentiView/internal/controller"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(state controller.ViewState) ([]byte, error) {
	var b strings.Builder

	switch state.Kind {
	case controller.KindResult:
		if state.Result == nil {
			break
		}
		fmt.Fprintf(&b, "## %s\n\n", state.Result.BadgeText())
		f.writeFieldTable(&b, state)
		b.WriteString("```json\n")
		b.WriteString(state.Result.Pretty())
		b.WriteString("\n```\n")
	case controller.KindError:
		b.WriteString("## Analysis Error\n\n")
		fmt.Fprintf(&b, "> %s\n", state.Message)
	default:
		fmt.Fprintf(&b, "_%s_\n", state.Kind.String())
	}

	return []byte(b.String()), nil
}

// writeFieldTable writes the scalar top-level fields as a table
func (f *markdownFormatter) writeFieldTable(b *strings.Builder, state controller.ViewState) {
	fields, err := state.Result.Fields()
	if err != nil {
		return
	}

	rows := make([]string, 0, len(fields))
	for _, field := range fields {
		if !isScalar(field.Value) {
			continue
		}
		value := strings.ReplaceAll(field.Scalar(), "|", "\\|")
		value = strings.ReplaceAll(value, "\n", " ")
		rows = append(rows, fmt.Sprintf("| %s | %s |", field.Key, value))
	}
	if len(rows) == 0 {
		return
	}

	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	for _, row := range rows {
		b.WriteString(row + "\n")
	}
	b.WriteString("\n")
}

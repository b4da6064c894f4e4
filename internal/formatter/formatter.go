package formatter

import (
	"fmt"

	"github.com/yildizm/SentiView/internal/controller"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(state controller.ViewState) ([]byte, error)
}

// New returns the formatter for the named output format
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text, json or markdown)", format)
	}
}

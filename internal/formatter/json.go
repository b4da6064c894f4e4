package formatter

import (
	"encoding/json"

	"github.com/yildizm/SentiView/internal/controller"
)

// jsonFormatter prints the raw result object, or an error envelope
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// ErrorOutput is the JSON shape of an error state
type ErrorOutput struct {
	Error string `json:"error"`
}

// StatusOutput is the JSON shape of idle and loading states
type StatusOutput struct {
	State string `json:"state"`
}

func (f *jsonFormatter) Format(state controller.ViewState) ([]byte, error) {
	switch state.Kind {
	case controller.KindResult:
		if state.Result != nil {
			return []byte(state.Result.Pretty()), nil
		}
	case controller.KindError:
		return json.MarshalIndent(&ErrorOutput{Error: state.Message}, "", "  ")
	}
	return json.MarshalIndent(&StatusOutput{State: state.Kind.String()}, "", "  ")
}
